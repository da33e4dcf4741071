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

package loader

import (
	"github.com/jetsetilly/tilewright/storage"
)

// Task is a single unit of asynchronous work.
type Task[K comparable] struct {
	Key K

	// Ticket is chosen by the caller of Schedule(). It is not used by the
	// loader
	Ticket uint64

	// the number of times the task has been polled
	Polls int

	pending storage.Pending[[]byte]
}

// Loader is a registry of tasks.
type Loader[K comparable] struct {
	// tasks in the order they were scheduled
	tasks []*Task[K]

	// tasks indexed by key
	index map[K]*Task[K]
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader[K comparable]() *Loader[K] {
	return &Loader[K]{
		index: make(map[K]*Task[K]),
	}
}

// Schedule registers the pending read for the key. If a task for the key is
// already in flight then that task is returned and the boolean value is false.
// In that case the new pending value is ignored.
func (l *Loader[K]) Schedule(key K, ticket uint64, pending storage.Pending[[]byte]) (*Task[K], bool) {
	if t, ok := l.index[key]; ok {
		return t, false
	}

	t := &Task[K]{
		Key:     key,
		Ticket:  ticket,
		pending: pending,
	}
	l.tasks = append(l.tasks, t)
	l.index[key] = t

	return t, true
}

// InFlight returns the task for the key if there is one.
func (l *Loader[K]) InFlight(key K) (*Task[K], bool) {
	t, ok := l.index[key]
	return t, ok
}

// Len returns the number of tasks in flight.
func (l *Loader[K]) Len() int {
	return len(l.tasks)
}

// PollAll polls every task once, in the order in which they were scheduled.
// Completed tasks are removed from the loader before the apply function is
// called with the result. It is safe for the apply function to call
// Schedule(), including for the key of the task that has just completed.
//
// Returns the number of tasks that completed.
func (l *Loader[K]) PollAll(apply func(task *Task[K], data []byte, err error)) int {
	current := l.tasks
	l.tasks = make([]*Task[K], 0, len(current))

	var completed int

	for _, t := range current {
		t.Polls++

		data, done, err := t.pending.Poll()
		if !done {
			l.tasks = append(l.tasks, t)
			continue
		}

		completed++
		delete(l.index, t.Key)
		apply(t, data, err)
	}

	return completed
}

// Clear forgets about every task in flight. The results of those tasks will
// never be applied.
func (l *Loader[K]) Clear() {
	l.tasks = l.tasks[:0]
	clear(l.index)
}
