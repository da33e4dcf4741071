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

package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
)

// Memory is an in-memory store. Directories exist implicitly when they
// contain at least one file.
type Memory struct {
	crit    sync.RWMutex
	files   map[string][]byte
	latency time.Duration
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
	}
}

// SetLatency causes every operation to take at least the duration given.
func (m *Memory) SetLatency(d time.Duration) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.latency = d
}

func (m *Memory) wait(ctx context.Context, path string) error {
	m.crit.RLock()
	d := m.latency
	m.crit.RUnlock()

	if d == 0 {
		return storage.Classify(path, ctx.Err())
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return storage.Classify(path, ctx.Err())
	case <-t.C:
	}
	return nil
}

// Put stores the data at path without latency.
func (m *Memory) Put(path string, data []byte) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.files[storage.CleanPath(path)] = append([]byte(nil), data...)
}

// Len returns the number of files in the store.
func (m *Memory) Len() int {
	m.crit.RLock()
	defer m.crit.RUnlock()
	return len(m.files)
}

// ReadBytes implements the storage.Backend interface. The returned data is a
// copy and is safe to modify.
func (m *Memory) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	if err := m.wait(ctx, path); err != nil {
		return nil, err
	}

	m.crit.RLock()
	defer m.crit.RUnlock()

	d, ok := m.files[storage.CleanPath(path)]
	if !ok {
		return nil, curated.Errorf(storage.NotFound, path)
	}
	return append([]byte(nil), d...), nil
}

// WriteBytes implements the storage.Backend interface.
func (m *Memory) WriteBytes(ctx context.Context, path string, data []byte) error {
	if err := m.wait(ctx, path); err != nil {
		return err
	}
	m.Put(path, data)
	return nil
}

// List implements the storage.Backend interface.
func (m *Memory) List(ctx context.Context, path string) ([]storage.Entry, error) {
	if err := m.wait(ctx, path); err != nil {
		return nil, err
	}

	m.crit.RLock()
	defer m.crit.RUnlock()

	dir := storage.CleanPath(path)
	prefix := ""
	if dir != "" {
		prefix = dir + "/"
	}

	seen := make(map[string]bool)
	var ent []storage.Entry

	for p := range m.files {
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

	if len(ent) == 0 && dir != "" {
		return nil, curated.Errorf(storage.NotFound, path)
	}

	storage.SortEntries(ent)

	return ent, nil
}
