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

// Package archivefs implements the storage.Backend interface for a project
// packaged in a zip archive. Archives are read-only.
//
// In addition to the standard deflate method, entries compressed with zstd are
// supported.
//
// Many archives contain a single top-level directory holding the project.
// When that is the case the directory is treated as the root of the project.
package archivefs
