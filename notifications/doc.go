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

// Package notifications collects short messages for the user, shown as toasts
// by the editor.
//
// Notices are raised by the panels and by the editor session. For example,
// when an icon in the graphic picker cannot be loaded. Every notice is also
// written to the central log.
//
// A notice expires after a fixed lifetime. Expired notices are removed the
// next time the list of active notices is requested.
package notifications
