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

// Package sink provides the Slot type, which holds at most one live handle to
// a playback or render resource. Installing a new handle in an occupied slot
// releases the previous handle first.
package sink

// Releaser is implemented by handles that can be installed in a Slot.
// Release() must free the underlying resource and stop any playback.
type Releaser interface {
	Release()
}

// Slot holds zero or one live handles. The zero value is an empty slot.
type Slot[H Releaser] struct {
	live     H
	occupied bool
}

// Install the handle in the slot. If the slot is already occupied then the
// existing handle is released before the new handle is installed.
func (s *Slot[H]) Install(h H) {
	s.Release()
	s.live = h
	s.occupied = true
}

// Live returns the handle in the slot. Returns false if the slot is empty.
func (s *Slot[H]) Live() (H, bool) {
	return s.live, s.occupied
}

// Release the handle in the slot, leaving the slot empty. Returns false if the
// slot was already empty.
func (s *Slot[H]) Release() bool {
	if !s.occupied {
		return false
	}
	h := s.live
	var zero H
	s.live = zero
	s.occupied = false
	h.Release()
	return true
}
