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

// Package panels contains the editor panels. Panels are shown once per frame
// and request every resource they need from the cache on every frame. A
// panel never waits for a resource. If the resource is not ready then the
// panel shows that it is loading and tries again on the next frame.
//
// Documents are edited in place through cache.Mutate(), so an edit made in
// one panel is seen by every other panel showing the same document.
//
// Panels are collected by the Tabs type. The Tabs type ensures that no two
// panels have the same name.
package panels
