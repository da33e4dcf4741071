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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectEquality() and ExpectInequality() functions compare values of
// the same comparable type. ExpectSuccess() and ExpectFailure() accept bool
// and error values (and nil). A success value is true or a nil error.
//
// The Demand*() variants stop the test immediately on failure. Use them when
// the remainder of the test makes no sense after the failure. For example,
// when a value required by subsequent lines could not be created.
//
// Functions take an optional list of tags which are printed as part of the
// failure message. This is useful when testing inside a loop.
package test
