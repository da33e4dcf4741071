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

package loader_test

import (
	"testing"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/loader"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/jetsetilly/tilewright/storage/storagetest"
	"github.com/jetsetilly/tilewright/test"
)

type completion struct {
	key    string
	ticket uint64
	data   string
	err    error
}

func TestSchedule(t *testing.T) {
	fs := storagetest.NewFS()
	fs.Put("a", []byte("A"))

	ldr := loader.NewLoader[string]()

	task, ok := ldr.Schedule("a", 1, fs.ReadBytes("a"))
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, task.Key, "a")
	test.ExpectEquality(t, ldr.Len(), 1)

	// scheduling the same key attaches to the existing task
	again, ok := ldr.Schedule("a", 2, storage.Done([]byte("B"), nil))
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, again, task)
	test.ExpectEquality(t, again.Ticket, uint64(1))
	test.ExpectEquality(t, ldr.Len(), 1)

	inflight, ok := ldr.InFlight("a")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, inflight, task)

	_, ok = ldr.InFlight("b")
	test.ExpectFailure(t, ok)
}

func TestPollAll(t *testing.T) {
	fs := storagetest.NewFS()
	fs.Put("a", []byte("A"))
	fs.Put("b", []byte("B"))

	ldr := loader.NewLoader[string]()
	ldr.Schedule("a", 1, fs.ReadBytes("a"))
	ldr.Schedule("b", 2, fs.ReadBytes("b"))
	ldr.Schedule("c", 3, fs.ReadBytes("c"))

	var results []completion
	apply := func(task *loader.Task[string], data []byte, err error) {
		results = append(results, completion{key: task.Key, ticket: task.Ticket, data: string(data), err: err})
	}

	// nothing has completed yet
	test.ExpectEquality(t, ldr.PollAll(apply), 0)
	test.ExpectEquality(t, len(results), 0)

	// completions are applied in the order the reads report ready, not the
	// order they were scheduled
	fs.CompleteOne("b")
	test.ExpectEquality(t, ldr.PollAll(apply), 1)
	test.DemandEquality(t, len(results), 1)
	test.ExpectEquality(t, results[0].key, "b")
	test.ExpectEquality(t, results[0].ticket, uint64(2))
	test.ExpectEquality(t, results[0].data, "B")
	test.ExpectEquality(t, ldr.Len(), 2)

	fs.Complete()
	test.ExpectEquality(t, ldr.PollAll(apply), 2)
	test.DemandEquality(t, len(results), 3)
	test.ExpectEquality(t, results[1].key, "a")
	test.ExpectEquality(t, results[2].key, "c")
	test.ExpectSuccess(t, curated.Is(results[2].err, storage.NotFound))
	test.ExpectEquality(t, ldr.Len(), 0)

	// a completed task is never applied twice
	test.ExpectEquality(t, ldr.PollAll(apply), 0)
	test.ExpectEquality(t, len(results), 3)
}

func TestPollCount(t *testing.T) {
	fs := storagetest.NewFS()
	ldr := loader.NewLoader[string]()
	task, _ := ldr.Schedule("a", 0, fs.ReadBytes("a"))

	noop := func(*loader.Task[string], []byte, error) {}
	ldr.PollAll(noop)
	ldr.PollAll(noop)
	fs.Complete()
	ldr.PollAll(noop)
	test.ExpectEquality(t, task.Polls, 3)
}

func TestRescheduleDuringApply(t *testing.T) {
	fs := storagetest.NewFS()
	fs.Put("a", []byte("A"))

	ldr := loader.NewLoader[string]()
	ldr.Schedule("a", 1, fs.ReadBytes("a"))

	var tickets []uint64
	apply := func(task *loader.Task[string], data []byte, err error) {
		tickets = append(tickets, task.Ticket)
		if task.Ticket == 1 {
			_, ok := ldr.Schedule("a", 2, fs.ReadBytes("a"))
			test.ExpectSuccess(t, ok)
		}
	}

	fs.Complete()
	ldr.PollAll(apply)
	test.ExpectEquality(t, ldr.Len(), 1)
	test.ExpectEquality(t, fs.Reads("a"), 2)

	fs.Complete()
	ldr.PollAll(apply)
	test.ExpectEquality(t, ldr.Len(), 0)
	test.DemandEquality(t, len(tickets), 2)
	test.ExpectEquality(t, tickets[1], uint64(2))
}

func TestClear(t *testing.T) {
	fs := storagetest.NewFS()
	ldr := loader.NewLoader[string]()
	ldr.Schedule("a", 0, fs.ReadBytes("a"))
	ldr.Clear()
	test.ExpectEquality(t, ldr.Len(), 0)

	fs.Complete()
	test.ExpectEquality(t, ldr.PollAll(func(*loader.Task[string], []byte, error) {
		t.Errorf("cleared task should not be applied")
	}), 0)
}
