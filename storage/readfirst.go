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
	"github.com/jetsetilly/tilewright/curated"
)

// readFirst tries each candidate path in turn. A candidate is only tried if
// the previous candidate was not found.
type readFirst struct {
	fs         Filesystem
	candidates []string
	idx        int
	current    Pending[[]byte]

	// the error for the first candidate is the one reported if no candidate
	// is found
	firstErr error

	done  bool
	value []byte
	err   error
}

// ReadFirst returns the contents of the first candidate path that exists. The
// read of the first candidate is issued immediately and the next candidate is
// only issued when the previous read has completed with a NotFound error. Any
// other error ends the search.
//
// If no candidate exists the NotFound error for the first candidate is
// returned.
func ReadFirst(fs Filesystem, candidates ...string) Pending[[]byte] {
	if len(candidates) == 0 {
		return Done[[]byte](nil, curated.Errorf(NotFound, "no candidate paths"))
	}
	if len(candidates) == 1 {
		return fs.ReadBytes(candidates[0])
	}
	return &readFirst{
		fs:         fs,
		candidates: candidates,
		current:    fs.ReadBytes(candidates[0]),
	}
}

// Poll implements the Pending interface.
func (r *readFirst) Poll() ([]byte, bool, error) {
	if r.done {
		return r.value, true, r.err
	}

	data, done, err := r.current.Poll()
	if !done {
		return nil, false, nil
	}

	if err != nil && curated.Is(err, NotFound) {
		if r.firstErr == nil {
			r.firstErr = err
		}

		r.idx++
		if r.idx < len(r.candidates) {
			r.current = r.fs.ReadBytes(r.candidates[r.idx])
			return nil, false, nil
		}

		err = r.firstErr
	}

	r.done = true
	r.value = data
	r.err = err

	return r.value, true, r.err
}
