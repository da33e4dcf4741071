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

package disk

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/natefinch/atomic"
)

// Disk is a project directory on the native filesystem.
type Disk struct {
	root string
}

// NewDisk is the preferred method of initialisation for the Disk type. The
// root must be an existing directory.
func NewDisk(root string) (*Disk, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, curated.Errorf(storage.Fault, root, err)
	}

	fi, err := os.Stat(root)
	if err != nil {
		return nil, storage.Classify(root, err)
	}
	if !fi.IsDir() {
		return nil, curated.Errorf(storage.Fault, root, "not a directory")
	}

	return &Disk{root: root}, nil
}

func (d *Disk) String() string {
	return fmt.Sprintf("disk: %s", d.root)
}

// Root returns the absolute path of the project directory.
func (d *Disk) Root() string {
	return d.root
}

func (d *Disk) resolve(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(storage.CleanPath(path)))
}

// ReadBytes implements the storage.Backend interface.
func (d *Disk) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify(path, err)
	}
	data, err := os.ReadFile(d.resolve(path))
	if err != nil {
		return nil, storage.Classify(path, err)
	}
	return data, nil
}

// WriteBytes implements the storage.Backend interface. Missing directories
// are created as required.
func (d *Disk) WriteBytes(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return storage.Classify(path, err)
	}

	fn := d.resolve(path)
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return storage.Classify(path, err)
	}
	if err := atomic.WriteFile(fn, bytes.NewReader(data)); err != nil {
		return storage.Classify(path, err)
	}
	return nil
}

// List implements the storage.Backend interface.
func (d *Disk) List(ctx context.Context, path string) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify(path, err)
	}

	dir := d.resolve(path)
	ent, err := os.ReadDir(dir)
	if err != nil {
		return nil, storage.Classify(path, err)
	}

	list := make([]storage.Entry, 0, len(ent))
	for _, e := range ent {
		// using os.Stat() to get file information otherwise links to
		// directories do not have the IsDir() property
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		list = append(list, storage.Entry{
			Name:  e.Name(),
			IsDir: fi.IsDir(),
		})
	}

	storage.SortEntries(list)

	return list, nil
}
