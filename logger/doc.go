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

// Package logger is the central logging facility for Tilewright. Log entries
// are kept in memory, in a ring of a fixed maximum size, and can be written to
// any io.Writer on demand. Consecutive identical entries are folded into a
// single entry with a repeat count.
//
// Entries are created with the Log() and Logf() functions. Both take a
// Permission argument, which allows the calling environment to suppress
// logging. The Allow value can be used when logging should always happen.
//
//	logger.Log(logger.Allow, "cache", "loading Data/Map001.json")
//	logger.Logf(logger.Allow, "cache", "%v: %v", key, err)
//
// Entries can be echoed to an io.Writer as they are created with SetEcho().
// The Colorizer type can be used to wrap the echo writer when it is a
// terminal.
package logger
