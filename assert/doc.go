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

// Package assert contains run-time assertions that are too expensive to make
// in normal use but are useful during development.
package assert
