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

// Package preferences collates the preference values used by the editor. The
// values are stored on disk with the prefs package, in the file named by
// DefaultFile in the configuration directory.
//
// Every value can be overridden for a single session by pushing a group onto
// the prefs command line stack before calling NewPreferences(). For example:
//
//	prefs.PushCommandLineStack("storage.backend::zip; audio.volume::50")
package preferences
