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

// Package prefs facilitates the storage of preferential values in the
// Tilewright system. It is used by the editor's preferences package and by
// anything else that wants a value to survive between sessions.
//
// Preference values are declared with one of the Bool, String, Int or Float
// types and then added to a Disk instance under a key:
//
//	dsk, err := prefs.NewDisk(pth)
//	var volume prefs.Int
//	err = dsk.Add("audio.volume", &volume)
//
// The Disk type loads and saves values to a file on disk. Each line of the
// file is of the form:
//
//	key :: value
//
// Saving is atomic. Keys in the file that have not been added to a Disk
// instance are preserved on save, which means more than one Disk instance can
// share the same file.
//
// Hook functions can be attached to any value. The pre hook is called before
// a value is changed and can reject the change by returning an error. The
// post hook is called after the change.
//
// The command line stack is a way of overriding values for a single session.
// Values pushed with PushCommandLineStack() take priority over values loaded
// from disk but are never saved.
package prefs
