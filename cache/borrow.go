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

package cache

import (
	"github.com/jetsetilly/tilewright/curated"
)

func (c *Cache) ready(key Key) (*entry, error) {
	if c.closed {
		return nil, curated.Errorf(Closed)
	}
	e, ok := c.entries[key]
	if !ok || e.state != Ready {
		return nil, curated.Errorf(NotReady, key)
	}
	return e, nil
}

// Mutate calls the function with exclusive access to the value of the entry
// for the key. The mutation happens in place, there is no need to store the
// value afterwards.
//
// Returns the NotReady error if the entry is not in the Ready state and the
// BorrowConflict error if the entry is already borrowed by Mutate() or View().
// The function is not called in either case.
//
// If the function returns without error and the key is a document then the
// document is marked as dirty.
func (c *Cache) Mutate(key Key, fn func(v any) error) error {
	c.thread.Check("cache.Mutate")

	e, err := c.ready(key)
	if err != nil {
		return err
	}
	if e.writing || e.readers > 0 {
		return curated.Errorf(BorrowConflict, key)
	}

	e.writing = true
	defer func() {
		e.writing = false
	}()

	err = fn(e.handle.value)
	if err != nil {
		return err
	}

	if key.IsDocument() {
		c.markDirty(key)
	}

	return nil
}

// View calls the function with shared access to the value of the entry for
// the key. Any number of calls to View() can be in progress at once but not
// while a call to Mutate() is in progress.
//
// Returns the NotReady and BorrowConflict errors in the same way as Mutate().
func (c *Cache) View(key Key, fn func(v any) error) error {
	c.thread.Check("cache.View")

	e, err := c.ready(key)
	if err != nil {
		return err
	}
	if e.writing {
		return curated.Errorf(BorrowConflict, key)
	}

	e.readers++
	defer func() {
		e.readers--
	}()

	return fn(e.handle.value)
}

// MutateAs is like Mutate() but with the value asserted to type T. Returns
// the TypeMismatch error if the value is not of type T.
func MutateAs[T any](c *Cache, key Key, fn func(v T) error) error {
	return c.Mutate(key, func(v any) error {
		t, ok := v.(T)
		if !ok {
			return curated.Errorf(TypeMismatch, key, v)
		}
		return fn(t)
	})
}

// ViewAs is like View() but with the value asserted to type T.
func ViewAs[T any](c *Cache, key Key, fn func(v T) error) error {
	return c.View(key, func(v any) error {
		t, ok := v.(T)
		if !ok {
			return curated.Errorf(TypeMismatch, key, v)
		}
		return fn(t)
	})
}
