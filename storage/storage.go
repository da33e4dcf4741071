// This file is part of Tilewright.
//
// Tilewright is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilewright is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilewright.  If not, see <https://www.gnu.org/licenses/>.

package storage

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jetsetilly/tilewright/curated"
)

// Sentinel error patterns for all storage operations.
const (
	NotFound         = "storage: not found: %v"
	PermissionDenied = "storage: permission denied: %v"
	Fault            = "storage: %v: %v"
)

// Classify an error from a storage operation on path. Errors that are already
// classified are returned unchanged. A nil error returns nil.
func Classify(path string, err error) error {
	if err == nil {
		return nil
	}

	if IsIOError(err) {
		return err
	}

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return curated.Errorf(NotFound, path)
	case errors.Is(err, fs.ErrPermission):
		return curated.Errorf(PermissionDenied, path)
	}

	return curated.Errorf(Fault, path, err)
}

// IsIOError returns true if the error has been classified by this package.
func IsIOError(err error) bool {
	return curated.Is(err, NotFound) || curated.Is(err, PermissionDenied) || curated.Is(err, Fault)
}

// CleanPath normalises a project path. The result is slash separated with no
// leading slash. The root of the project is the empty string.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// Entry is a single item in a directory listing.
type Entry struct {
	Name string

	// a directory has IsDir set to true
	IsDir bool
}

func (e Entry) String() string {
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

// SortEntries puts directories at the start of the list. Within each group,
// entries are sorted alphabetically (case insensitive).
func SortEntries(ent []Entry) {
	sort.SliceStable(ent, func(i int, j int) bool {
		if ent[i].IsDir != ent[j].IsDir {
			return ent[i].IsDir
		}
		return strings.ToLower(ent[i].Name) < strings.ToLower(ent[j].Name)
	})
}

// Backend is implemented by concrete stores. All functions block until the
// operation is complete or the context is cancelled.
type Backend interface {
	// ReadBytes returns the entire contents of the file at path.
	ReadBytes(ctx context.Context, path string) ([]byte, error)

	// WriteBytes replaces the file at path with data.
	WriteBytes(ctx context.Context, path string, data []byte) error

	// List returns the entries in the directory at path. The list should
	// be ordered with SortEntries().
	List(ctx context.Context, path string) ([]Entry, error)
}

// Filesystem is the asynchronous interface to project storage. No function
// blocks. The result of an operation is retrieved by polling the returned
// Pending value.
type Filesystem interface {
	ReadBytes(path string) Pending[[]byte]
	WriteBytes(path string, data []byte) Pending[struct{}]
	List(path string) Pending[[]Entry]
}
