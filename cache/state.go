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

// State of a cache entry.
type State int

// List of valid State values. An entry moves through the states in the order
// listed. Ready and Failed are terminal until the entry is invalidated.
const (
	Unloaded State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Handle gives access to the decoded value of a Ready entry. The same Handle
// is returned for every request until the entry is invalidated.
type Handle struct {
	key        Key
	value      any
	generation uint64
	entry      *entry
}

// Key returns the key that the handle was created for.
func (h *Handle) Key() Key {
	return h.key
}

// Value returns the decoded value.
//
// Access to the value through the Handle is not protected against concurrent
// mutation. Use the View() and Mutate() functions of the Cache for that.
func (h *Handle) Value() any {
	return h.value
}

// Stale returns true if the entry the handle was created for has since been
// invalidated.
func (h *Handle) Stale() bool {
	return h.entry.generation != h.generation
}

// Result is returned by GetOrLoad() and Peek().
type Result struct {
	State State

	// Handle is only valid when State is Ready
	Handle *Handle

	// Err is only valid when State is Failed
	Err error
}

func (r Result) String() string {
	switch r.State {
	case Ready:
		return r.Handle.key.String()
	case Failed:
		return r.Err.Error()
	}
	return r.State.String()
}

// As returns the value in the Result as type T. Returns false if the result is
// not Ready or if the value is not of type T.
func As[T any](r Result) (T, bool) {
	if r.State != Ready {
		var zero T
		return zero, false
	}
	v, ok := r.Handle.value.(T)
	return v, ok
}
