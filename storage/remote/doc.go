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

// Package remote implements the storage.Backend interface over HTTP. Every
// operation is a round trip to the server and requests are rate limited.
//
// The protocol is simple. A file is read with a GET request for the path,
// relative to the base URL, and written with a PUT request. A directory is
// listed with a GET request for the path with the "list" query parameter.
// The response to a list request is one entry per line, directories having a
// trailing slash.
//
// A Handler for the protocol is provided, which will serve any
// storage.Backend.
package remote
