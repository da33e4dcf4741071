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

// Package paths contains functions to prepare paths for Tilewright resources.
//
// The ResourcePath() function returns the correct path to the resource
// directory/file specified in the arguments. If a directory called
// ".tilewright" exists in the current working directory then that is used as
// the base (a portable installation). Otherwise the base is the "tilewright"
// directory in the user's configuration directory.
package paths
