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

package archivefs

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Archive is a project in a zip archive.
type Archive struct {
	name   string
	zr     *zip.Reader
	closer io.Closer

	// the top-level directory that is treated as the root of the project. the
	// empty string if there is no such directory
	root string

	// files indexed by their cleaned path relative to root
	files map[string]*zip.File

	// every directory, including directories that are only implied by the
	// path of a file. the root directory is the empty string. the inner map
	// records whether the child is a directory
	dirs map[string]map[string]bool
}

// Open the named archive file.
func Open(filename string) (*Archive, error) {
	zf, err := zip.OpenReader(filename)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, filename, err)
	}

	a, err := newArchive(&zf.Reader, filename)
	if err != nil {
		zf.Close()
		return nil, err
	}
	a.closer = zf

	return a, nil
}

// NewArchive creates an Archive from the data in the io.ReaderAt. The name is
// used for logging and errors only.
func NewArchive(r io.ReaderAt, size int64, name string) (*Archive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, name, err)
	}
	return newArchive(zr, name)
}

func newArchive(zr *zip.Reader, name string) (*Archive, error) {
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	zr.RegisterDecompressor(zstd.ZipMethodPKWare, zstd.ZipDecompressor())

	a := &Archive{
		name:  name,
		zr:    zr,
		files: make(map[string]*zip.File),
		dirs:  map[string]map[string]bool{"": {}},
	}

	a.root = commonRoot(zr.File)

	for _, f := range zr.File {
		p := storage.CleanPath(f.Name)
		if a.root != "" {
			p = strings.TrimPrefix(strings.TrimPrefix(p, a.root), "/")
		}
		if p == "" {
			continue
		}

		isDir := strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
		if isDir {
			a.addDir(p)
		} else {
			a.files[p] = f
			a.addDir(path.Dir(p))
			a.dirs[dirOf(p)][path.Base(p)] = false
		}
	}

	return a, nil
}

// dirOf is like path.Dir() except that the root is the empty string
func dirOf(p string) string {
	d := path.Dir(p)
	if d == "." {
		return ""
	}
	return d
}

// addDir adds the directory and all of its parents
func (a *Archive) addDir(p string) {
	if p == "." || p == "" {
		return
	}
	if _, ok := a.dirs[p]; !ok {
		a.dirs[p] = make(map[string]bool)
	}
	parent := dirOf(p)
	a.addDir(parent)
	a.dirs[parent][path.Base(p)] = true
}

// commonRoot returns the single top-level directory shared by every entry in
// the archive. Returns the empty string if there is no such directory.
func commonRoot(files []*zip.File) string {
	var root string
	for _, f := range files {
		p := storage.CleanPath(f.Name)
		top, _, ok := strings.Cut(p, "/")
		if !ok && !strings.HasSuffix(f.Name, "/") {
			// a file at the top level
			return ""
		}
		if root == "" {
			root = top
		} else if root != top {
			return ""
		}
	}
	return root
}

func (a *Archive) String() string {
	if a.root == "" {
		return fmt.Sprintf("archive: %s", a.name)
	}
	return fmt.Sprintf("archive: %s (%s)", a.name, a.root)
}

// Root returns the name of the top-level directory that is being treated as
// the root of the project.
func (a *Archive) Root() string {
	return a.root
}

// Close the archive file. Does nothing for archives created with NewArchive().
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// ReadBytes implements the storage.Backend interface.
func (a *Archive) ReadBytes(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify(name, err)
	}

	f, ok := a.files[storage.CleanPath(name)]
	if !ok {
		return nil, curated.Errorf(storage.NotFound, name)
	}

	r, err := f.Open()
	if err != nil {
		return nil, curated.Errorf(storage.Fault, name, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, name, err)
	}

	return data, nil
}

// WriteBytes implements the storage.Backend interface. Archives are read-only
// and so this function always returns the PermissionDenied error.
func (a *Archive) WriteBytes(_ context.Context, name string, _ []byte) error {
	return curated.Errorf(storage.PermissionDenied, name)
}

// List implements the storage.Backend interface.
func (a *Archive) List(ctx context.Context, name string) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify(name, err)
	}

	d, ok := a.dirs[storage.CleanPath(name)]
	if !ok {
		return nil, curated.Errorf(storage.NotFound, name)
	}

	ent := make([]storage.Entry, 0, len(d))
	for n, isDir := range d {
		ent = append(ent, storage.Entry{Name: n, IsDir: isDir})
	}
	storage.SortEntries(ent)

	return ent, nil
}
