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

package cache

import (
	"github.com/jetsetilly/tilewright/assert"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/loader"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/storage"
)

// Sentinal error patterns.
const (
	NotReady        = "cache: %v: not ready"
	BorrowConflict  = "cache: %v: already borrowed"
	UnknownCategory = "cache: %v: unknown category"
	TypeMismatch    = "cache: %v: value is %T"
	Closed          = "cache: closed"
	InvalidID       = "cache: %v: document id out of range"
)

// Locator returns the storage paths where the resource for the key might be
// found. The paths are tried in order and later paths are only tried if the
// earlier ones were not found.
type Locator func(key Key) []string

// Decoder converts the bytes read from storage into a value. The Decoder is
// called exactly once per successful read.
type Decoder func(key Key, data []byte) (any, error)

type category struct {
	locate Locator
	decode Decoder
}

type entry struct {
	key   Key
	state State
	err   error

	handle *Handle

	// incremented every time the entry is invalidated. the generation is used
	// as the ticket for the load task and any task with a different ticket is
	// outdated
	generation uint64

	// number of loads started for this entry
	loads int

	// borrow flags
	readers int
	writing bool
}

// Stats records the activity of the cache since it was created.
type Stats struct {
	// calls to GetOrLoad() that found the entry Ready or Failed
	Hits int

	// calls to GetOrLoad() that found the entry Unloaded
	Misses int

	// loads scheduled with the storage layer
	Loads int

	// loads that completed with an error or that failed to decode
	Failures int

	// loads that completed after the entry had been invalidated
	Discards int

	// loads currently in flight
	InFlight int
}

// Cache is the resource cache. There should be one Cache per project.
type Cache struct {
	fs         storage.Filesystem
	categories map[Category]category
	entries    map[Key]*entry

	// keys in the order the entries were created
	order []Key

	loader *loader.Loader[Key]
	dirty  map[Category]*dirtySet
	stats  Stats
	thread assert.Thread
	closed bool
}

// NewCache is the preferred method of initialisation for the Cache type.
//
// If checkThread is true then every function will panic if it is not called
// from the goroutine that called NewCache().
func NewCache(fs storage.Filesystem, checkThread bool) *Cache {
	return &Cache{
		fs:         fs,
		categories: make(map[Category]category),
		entries:    make(map[Key]*entry),
		loader:     loader.NewLoader[Key](),
		dirty:      make(map[Category]*dirtySet),
		thread:     assert.NewThread(checkThread),
	}
}

// Register the Locator and Decoder for a category. Registering a category a
// second time replaces the previous registration but does not affect entries
// that have already been loaded.
func (c *Cache) Register(cat Category, locate Locator, decode Decoder) {
	c.thread.Check("cache.Register")
	c.categories[cat] = category{locate: locate, decode: decode}
}

// Registered returns true if the category has been registered.
func (c *Cache) Registered(cat Category) bool {
	_, ok := c.categories[cat]
	return ok
}

// GetOrLoad returns the current state of the entry for the key. If the entry
// is Unloaded then a load is started and the Loading state is returned.
//
// Entries in the Failed state continue to return the error until the entry is
// invalidated. The load is not retried automatically.
func (c *Cache) GetOrLoad(key Key) Result {
	c.thread.Check("cache.GetOrLoad")

	if c.closed {
		return Result{State: Failed, Err: curated.Errorf(Closed)}
	}

	e := c.entry(key)

	switch e.state {
	case Ready:
		c.stats.Hits++
		return Result{State: Ready, Handle: e.handle}
	case Failed:
		c.stats.Hits++
		return Result{State: Failed, Err: e.err}
	case Loading:
		return Result{State: Loading}
	}

	c.stats.Misses++

	// a document that could not be marked as dirty could not be saved
	if key.IsDocument() && !trackable(key.ID) {
		c.fail(e, curated.Errorf(InvalidID, key))
		return Result{State: Failed, Err: e.err}
	}

	cat, ok := c.categories[key.Category]
	if !ok {
		c.fail(e, curated.Errorf(UnknownCategory, key.Category))
		return Result{State: Failed, Err: e.err}
	}

	c.load(e, cat)

	return Result{State: e.state, Handle: e.handle, Err: e.err}
}

// Peek returns the current state of the entry for the key without starting a
// load.
func (c *Cache) Peek(key Key) Result {
	c.thread.Check("cache.Peek")

	e, ok := c.entries[key]
	if !ok {
		return Result{State: Unloaded}
	}
	return Result{State: e.state, Handle: e.handle, Err: e.err}
}

// entry returns the entry for the key, creating it if necessary.
func (c *Cache) entry(key Key) *entry {
	e, ok := c.entries[key]
	if !ok {
		e = &entry{key: key}
		c.entries[key] = e
		c.order = append(c.order, key)
	}
	return e
}

func (c *Cache) load(e *entry, cat category) {
	e.state = Loading

	// a load from before the most recent invalidation is still in flight. the
	// new read is scheduled when that load completes
	if _, ok := c.loader.InFlight(e.key); ok {
		return
	}

	paths := cat.locate(e.key)
	c.loader.Schedule(e.key, e.generation, storage.ReadFirst(c.fs, paths...))
	e.loads++
	c.stats.Loads++
}

func (c *Cache) fail(e *entry, err error) {
	e.state = Failed
	e.err = err
	e.handle = nil
	c.stats.Failures++
	logger.Log(logger.Allow, "cache", err)
}

// Poll drives any loads that are in flight. It should be called once per
// frame. Returns the number of loads that completed.
func (c *Cache) Poll() int {
	c.thread.Check("cache.Poll")
	return c.loader.PollAll(c.apply)
}

func (c *Cache) apply(task *loader.Task[Key], data []byte, err error) {
	e, ok := c.entries[task.Key]
	if !ok {
		return
	}

	if task.Ticket != e.generation {
		c.stats.Discards++
		logger.Logf(logger.Allow, "cache", "%v: discarding outdated load", e.key)

		// the entry was requested again after it was invalidated
		if e.state == Loading {
			cat, ok := c.categories[e.key.Category]
			if !ok {
				c.fail(e, curated.Errorf(UnknownCategory, e.key.Category))
				return
			}
			c.load(e, cat)
		}
		return
	}

	if err != nil {
		c.fail(e, err)
		return
	}

	cat, ok := c.categories[e.key.Category]
	if !ok {
		c.fail(e, curated.Errorf(UnknownCategory, e.key.Category))
		return
	}

	v, err := cat.decode(e.key, data)
	if err != nil {
		c.fail(e, err)
		return
	}

	e.state = Ready
	e.err = nil
	e.handle = &Handle{
		key:        e.key,
		value:      v,
		generation: e.generation,
		entry:      e,
	}

	logger.Logf(logger.Allow, "cache", "%v: ready after %d frames", e.key, task.Polls)
}

func (c *Cache) invalidate(e *entry) {
	if e.state == Unloaded {
		return
	}
	e.state = Unloaded
	e.err = nil
	e.handle = nil
	e.generation++
}

// Invalidate returns the entry for the key to the Unloaded state. The next
// call to GetOrLoad() for the key will start a new load.
//
// Handles to the previous value remain usable but report that they are stale.
func (c *Cache) Invalidate(key Key) {
	c.thread.Check("cache.Invalidate")
	if e, ok := c.entries[key]; ok {
		c.invalidate(e)
	}
}

// InvalidateCategory invalidates every entry in the category.
func (c *Cache) InvalidateCategory(cat Category) {
	c.thread.Check("cache.InvalidateCategory")
	for _, e := range c.entries {
		if e.key.Category == cat {
			c.invalidate(e)
		}
	}
}

// InvalidateAll invalidates every entry in the cache.
func (c *Cache) InvalidateAll() {
	c.thread.Check("cache.InvalidateAll")
	for _, e := range c.entries {
		c.invalidate(e)
	}
}

// Stats returns a copy of the cache statistics.
func (c *Cache) Stats() Stats {
	c.thread.Check("cache.Stats")
	s := c.stats
	s.InFlight = c.loader.Len()
	return s
}

// Close the cache. Loads in flight are forgotten and every entry is dropped.
// Further calls to GetOrLoad() return the Closed error.
func (c *Cache) Close() {
	c.thread.Check("cache.Close")
	c.loader.Clear()
	for _, e := range c.entries {
		c.invalidate(e)
	}
	clear(c.entries)
	c.order = c.order[:0]
	c.closed = true
}
