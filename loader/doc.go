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

// Package loader bridges asynchronous storage reads into a synchronous,
// frame driven render loop.
//
// Work is registered with Schedule(). Nothing is ever waited on. Instead,
// PollAll() is called once per frame and every registered task is polled
// once. Tasks that have completed are removed and their result handed to the
// apply function given to PollAll().
//
// At most one task per key is in flight at any time. Scheduling a key that
// already has a task in flight returns the existing task.
//
// Tasks cannot be cancelled. Code that no longer wants the result of a task
// should give each task a ticket and ignore results with an out of date
// ticket when they arrive.
package loader
