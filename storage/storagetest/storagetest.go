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

// Package storagetest provides a storage.Filesystem whose reads only complete
// when the test says so. It makes tests of code that polls storage
// deterministic.
package storagetest

import (
	"sort"
	"strings"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
)

type op struct {
	path  string
	done  bool
	value []byte
	err   error
}

func (o *op) Poll() ([]byte, bool, error) {
	return o.value, o.done, o.err
}

// FS implements storage.Filesystem. Reads are held until Complete() or
// CompleteOne() is called.
type FS struct {
	files   map[string][]byte
	errs    map[string]error
	reads   map[string]int
	pending []*op
}

// NewFS is the preferred method of initialisation for the FS type.
func NewFS() *FS {
	return &FS{
		files: make(map[string][]byte),
		errs:  make(map[string]error),
		reads: make(map[string]int),
	}
}

// Put sets the contents of a file.
func (f *FS) Put(path string, data []byte) {
	f.files[storage.CleanPath(path)] = data
}

// Remove a file.
func (f *FS) Remove(path string) {
	delete(f.files, storage.CleanPath(path))
}

// SetError causes reads of path to fail with err.
func (f *FS) SetError(path string, err error) {
	f.errs[storage.CleanPath(path)] = err
}

// Reads returns the number of reads issued for path.
func (f *FS) Reads(path string) int {
	return f.reads[storage.CleanPath(path)]
}

// InFlight returns the number of reads that have not been completed.
func (f *FS) InFlight() int {
	return len(f.pending)
}

func (f *FS) resolve(o *op) {
	o.done = true
	if err, ok := f.errs[o.path]; ok {
		o.err = err
		return
	}
	if d, ok := f.files[o.path]; ok {
		o.value = d
		return
	}
	o.err = curated.Errorf(storage.NotFound, o.path)
}

// Complete resolves every read in flight. Returns the number of reads that
// were resolved.
func (f *FS) Complete() int {
	n := len(f.pending)
	for _, o := range f.pending {
		f.resolve(o)
	}
	f.pending = f.pending[:0]
	return n
}

// CompleteOne resolves the oldest read in flight for path. Returns false if
// there is no such read.
func (f *FS) CompleteOne(path string) bool {
	path = storage.CleanPath(path)
	for i, o := range f.pending {
		if o.path == path {
			f.resolve(o)
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return true
		}
	}
	return false
}

// ReadBytes implements the storage.Filesystem interface.
func (f *FS) ReadBytes(path string) storage.Pending[[]byte] {
	o := &op{path: storage.CleanPath(path)}
	f.reads[o.path]++
	f.pending = append(f.pending, o)
	return o
}

// WriteBytes implements the storage.Filesystem interface. Writes complete
// immediately.
func (f *FS) WriteBytes(path string, data []byte) storage.Pending[struct{}] {
	f.Put(path, data)
	return storage.Done(struct{}{}, nil)
}

// List implements the storage.Filesystem interface. Lists complete
// immediately.
func (f *FS) List(path string) storage.Pending[[]storage.Entry] {
	dir := storage.CleanPath(path)
	prefix := dir + "/"
	if dir == "" {
		prefix = ""
	}

	seen := make(map[string]bool)
	var ent []storage.Entry
	for p := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		name, _, isDir := strings.Cut(strings.TrimPrefix(p, prefix), "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		ent = append(ent, storage.Entry{Name: name, IsDir: isDir})
	}

	if len(ent) == 0 {
		return storage.Done[[]storage.Entry](nil, curated.Errorf(storage.NotFound, dir))
	}

	sort.Slice(ent, func(i, j int) bool { return ent[i].Name < ent[j].Name })
	storage.SortEntries(ent)

	return storage.Done(ent, nil)
}
