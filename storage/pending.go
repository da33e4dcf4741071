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

// Pending is an operation that may not have completed yet. Poll() never
// blocks. Once Poll() has returned done as true it will continue to do so,
// with the same value and error, on every subsequent call.
type Pending[T any] interface {
	Poll() (value T, done bool, err error)
}

type result[T any] struct {
	value T
	err   error
}

// future is a Pending value that is completed by another goroutine.
type future[T any] struct {
	ch   chan result[T]
	done bool
	res  result[T]
}

func newFuture[T any]() *future[T] {
	return &future[T]{
		ch: make(chan result[T], 1),
	}
}

// complete must only be called once.
func (f *future[T]) complete(value T, err error) {
	f.ch <- result[T]{value: value, err: err}
}

// Poll implements the Pending interface.
func (f *future[T]) Poll() (T, bool, error) {
	if !f.done {
		select {
		case f.res = <-f.ch:
			f.done = true
		default:
		}
	}
	return f.res.value, f.done, f.res.err
}

// resolved is a Pending value that is already complete.
type resolved[T any] struct {
	res result[T]
}

// Done returns a Pending value that is already complete.
func Done[T any](value T, err error) Pending[T] {
	return resolved[T]{res: result[T]{value: value, err: err}}
}

// Poll implements the Pending interface.
func (r resolved[T]) Poll() (T, bool, error) {
	return r.res.value, true, r.res.err
}
