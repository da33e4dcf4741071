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

// Package cache is the project resource cache. It sits between the panels of
// the editor, which expect synchronous access to project data, and the
// storage layer, which may only be able to answer asynchronously.
//
// Resources are identified by a Key. Keys belong to a Category and every
// category must be registered with a Locator and a Decoder before keys in
// that category can be loaded. The Locator says where in storage the
// resource can be found and the Decoder turns the bytes into a value.
//
// GetOrLoad() never blocks. The first request for a key schedules a read and
// returns the Loading state. The Poll() function must be called once per
// frame and it is during Poll() that completed reads are decoded and the
// entries updated. Subsequent requests for the key return the decoded value,
// or the error that caused the load to fail.
//
// Entries are never evicted. They can be returned to the Unloaded state with
// one of the Invalidate() functions, which cause the next request to load the
// resource afresh. Invalidating an entry while it is loading is safe, the
// result of the outdated load is discarded when it arrives.
//
// Values are shared by reference. Panels that need to change a value do so in
// place with the Mutate() function, which guarantees exclusive access for the
// duration of the mutation. View() grants shared access. For mutations to
// have any effect the Decoder must return a pointer type.
//
// The cache is owned by the render loop and has no internal locking. Creating
// the cache with thread checking enabled causes a panic if any function is
// called from a goroutine other than the one that created it.
package cache
