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

package audio

import "strings"

// Source is a playback category. Each source can play one sound at a time.
type Source int

// List of valid Source values.
const (
	BGM Source = iota
	BGS
	ME
	SE
	NumSources
)

// Sources is a list of every valid source.
var Sources = [...]Source{BGM, BGS, ME, SE}

func (s Source) String() string {
	switch s {
	case BGM:
		return "BGM"
	case BGS:
		return "BGS"
	case ME:
		return "ME"
	case SE:
		return "SE"
	}
	return "unknown source"
}

// Description of the source.
func (s Source) Description() string {
	switch s {
	case BGM:
		return "Background Music"
	case BGS:
		return "Background Sound"
	case ME:
		return "Music Effect"
	case SE:
		return "Sound Effect"
	}
	return "unknown source"
}

// ParseSource returns the Source with the name. The name must be one of the
// short names returned by String(), in any case.
func ParseSource(name string) (Source, bool) {
	for _, s := range Sources {
		if strings.EqualFold(s.String(), name) {
			return s, true
		}
	}
	return NumSources, false
}

// Loops returns true if sounds played on the source should repeat
// indefinitely.
func (s Source) Loops() bool {
	return s == BGM || s == BGS
}

// Directory returns the directory in the project where sounds for the source
// are kept.
func (s Source) Directory() string {
	return "Audio/" + s.String()
}
