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

	"golang.org/x/sync/semaphore"
)

// Async adapts a Backend to the Filesystem interface.
type Async struct {
	backend Backend
	ctx     context.Context
	sem     *semaphore.Weighted
}

// NewAsync is the preferred method of initialisation for the Async type.
// The context applies to every operation and cancelling it aborts operations
// that have not yet started. The maxInFlight argument bounds the number of
// backend operations running at the same time. A value less than one is
// treated as one.
func NewAsync(ctx context.Context, backend Backend, maxInFlight int64) *Async {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Async{
		backend: backend,
		ctx:     ctx,
		sem:     semaphore.NewWeighted(maxInFlight),
	}
}

// Backend returns the Backend being adapted.
func (a *Async) Backend() Backend {
	return a.backend
}

func run[T any](a *Async, path string, fn func(ctx context.Context) (T, error)) Pending[T] {
	f := newFuture[T]()

	go func() {
		var zero T

		if err := a.sem.Acquire(a.ctx, 1); err != nil {
			f.complete(zero, Classify(path, err))
			return
		}
		defer a.sem.Release(1)

		v, err := fn(a.ctx)
		if err != nil {
			f.complete(zero, Classify(path, err))
			return
		}
		f.complete(v, nil)
	}()

	return f
}

// ReadBytes implements the Filesystem interface.
func (a *Async) ReadBytes(path string) Pending[[]byte] {
	path = CleanPath(path)
	return run(a, path, func(ctx context.Context) ([]byte, error) {
		return a.backend.ReadBytes(ctx, path)
	})
}

// WriteBytes implements the Filesystem interface.
func (a *Async) WriteBytes(path string, data []byte) Pending[struct{}] {
	path = CleanPath(path)
	return run(a, path, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.backend.WriteBytes(ctx, path, data)
	})
}

// List implements the Filesystem interface.
func (a *Async) List(path string) Pending[[]Entry] {
	path = CleanPath(path)
	return run(a, path, func(ctx context.Context) ([]Entry, error) {
		return a.backend.List(ctx, path)
	})
}
