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
	"fmt"
	"io"
)

// EntryInfo summarises a single cache entry.
type EntryInfo struct {
	Key      Key
	State    State
	Err      error
	Loads    int
	Borrowed bool
}

func (i EntryInfo) String() string {
	s := fmt.Sprintf("%-30s %-8s loads=%d", i.Key, i.State, i.Loads)
	if i.Borrowed {
		s = fmt.Sprintf("%s (borrowed)", s)
	}
	if i.Err != nil {
		s = fmt.Sprintf("%s: %v", s, i.Err)
	}
	return s
}

// Snapshot returns a summary of every entry in the cache, in the order in which
// the entries were first requested.
func (c *Cache) Snapshot() []EntryInfo {
	c.thread.Check("cache.Snapshot")

	info := make([]EntryInfo, 0, len(c.order))
	for _, k := range c.order {
		e := c.entries[k]
		info = append(info, EntryInfo{
			Key:      e.key,
			State:    e.state,
			Err:      e.err,
			Loads:    e.loads,
			Borrowed: e.writing || e.readers > 0,
		})
	}
	return info
}

// WriteSnapshot writes the result of Snapshot() to the io.Writer, one entry
// per line.
func (c *Cache) WriteSnapshot(w io.Writer) error {
	for _, i := range c.Snapshot() {
		if _, err := fmt.Fprintln(w, i.String()); err != nil {
			return err
		}
	}
	return nil
}
