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

// Package editor is the editor session. It owns the resource cache of the open
// project, the audio and graphics sinks, the notices and the panels.
//
// The Service() function is called once per frame from the goroutine that
// created the Editor. It applies completed reads to the cache and shows every
// panel. Nothing in the session blocks during Service().
//
// Opening and saving a project are explicit user actions and do block, using
// the storage backend directly.
package editor
