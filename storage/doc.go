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

// Package storage abstracts the reading, writing and listing of project files
// over heterogeneous backends. It does no caching.
//
// There are two levels of interface. A Backend is a blocking, context aware
// implementation over some concrete store: native disk, a zip archive, an
// HTTP server, object storage. A Filesystem is the asynchronous interface
// used by the rest of the editor: every operation returns immediately with a
// Pending value that is polled, once per frame, until it is done.
//
// The Async type adapts any Backend to the Filesystem interface. Each
// operation runs in its own goroutine and the number of operations in flight
// at any one time is bounded.
//
//	fs := storage.NewAsync(ctx, disk.NewBackend(root), 4)
//	p := fs.ReadBytes("Data/Map001.json")
//
//	// once per frame
//	if data, done, err := p.Poll(); done {
//		...
//	}
//
// A Filesystem implementation that is natively asynchronous (for example, a
// sandboxed store where every read is a round trip) can implement Filesystem
// directly. Code that uses a Filesystem does not need to change.
//
// Paths are always slash separated and relative to the root of the project,
// regardless of the host operating system. CleanPath() normalises a path.
//
// Errors returned by this package and by all backends are curated errors with
// one of the NotFound, PermissionDenied or Fault patterns.
package storage
