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

package panels

import "github.com/jetsetilly/tilewright/version"

// Started is the panel shown when the editor starts.
type Started struct {
	closed bool
}

// NewStarted is the preferred method of initialisation for the Started type.
func NewStarted() *Started {
	return &Started{}
}

// Name implements the Panel interface.
func (p *Started) Name() string {
	return "Get Started"
}

// RequiresFilesystem implements the Panel interface.
func (p *Started) RequiresFilesystem() bool {
	return false
}

// ForceClose implements the Panel interface.
func (p *Started) ForceClose() bool {
	return p.closed
}

// Close the panel at the end of the next frame.
func (p *Started) Close() {
	p.closed = true
}

// Show implements the Panel interface.
func (p *Started) Show(f *Frame) error {
	if f.FS == nil {
		f.Printf("%s: no project open", version.ApplicationName)
		return nil
	}
	f.Printf("%s: %s", version.ApplicationName, f.Manifest.Title)
	return nil
}
