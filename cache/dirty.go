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
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/jetsetilly/tilewright/logger"
)

// dirtySet is the set of document IDs in a category that have been mutated
// since the set was last cleared.
type dirtySet struct {
	ids *roaring.Bitmap
}

// trackable returns true if the document ID can be stored in a dirty set.
// roaring bitmaps store unsigned 32bit values
func trackable(id int) bool {
	return id >= 0 && uint64(id) <= math.MaxUint32
}

func (c *Cache) markDirty(key Key) {
	// GetOrLoad() fails documents with untrackable IDs so this should never
	// happen
	if !trackable(key.ID) {
		logger.Logf(logger.Allow, "cache", "%v: cannot be marked as dirty", key)
		return
	}

	d, ok := c.dirty[key.Category]
	if !ok {
		d = &dirtySet{ids: roaring.New()}
		c.dirty[key.Category] = d
	}
	d.ids.Add(uint32(key.ID))
}

// Dirty returns the IDs of the documents in the category that have been
// mutated since the category was last cleared. IDs are in ascending order.
func (c *Cache) Dirty(cat Category) []int {
	c.thread.Check("cache.Dirty")

	d, ok := c.dirty[cat]
	if !ok {
		return nil
	}

	ids := make([]int, 0, d.ids.GetCardinality())
	it := d.ids.Iterator()
	for it.HasNext() {
		ids = append(ids, int(it.Next()))
	}
	return ids
}

// IsDirty returns true if the document has been mutated since its category
// was last cleared.
func (c *Cache) IsDirty(key Key) bool {
	c.thread.Check("cache.IsDirty")

	if !key.IsDocument() || !trackable(key.ID) {
		return false
	}
	d, ok := c.dirty[key.Category]
	if !ok {
		return false
	}
	return d.ids.Contains(uint32(key.ID))
}

// ClearDirty forgets the dirty documents in the category. Normally called after
// the documents have been saved.
func (c *Cache) ClearDirty(cat Category) {
	c.thread.Check("cache.ClearDirty")
	delete(c.dirty, cat)
}
