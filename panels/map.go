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

package panels

import (
	"fmt"

	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/project"
)

// Sentinal error patterns.
const (
	MissingTileset = "panels: map %d: no tileset with id %d"
)

type paint struct {
	x, y  int
	layer int
	tile  int
}

// MapPanel shows a map and the tileset it uses. Tiles painted on the map are
// written to the map document in the cache.
type MapPanel struct {
	id   int
	name string

	layer int

	// edits waiting to be applied to the map document
	queue []paint

	// summary of the map from the most recent frame
	status string
	ready  bool

	closed bool
}

// NewMapPanel is the preferred method of initialisation for the MapPanel
// type.
func NewMapPanel(id int, name string) *MapPanel {
	return &MapPanel{
		id:   id,
		name: name,
	}
}

// Name implements the Panel interface.
func (p *MapPanel) Name() string {
	return fmt.Sprintf("Map %d: %s", p.id, p.name)
}

// RequiresFilesystem implements the Panel interface.
func (p *MapPanel) RequiresFilesystem() bool {
	return true
}

// ForceClose implements the Panel interface.
func (p *MapPanel) ForceClose() bool {
	return p.closed
}

// Close the panel at the end of the next frame.
func (p *MapPanel) Close() {
	p.closed = true
}

// ID returns the ID of the map shown by the panel.
func (p *MapPanel) ID() int {
	return p.id
}

// SelectLayer changes the layer that tiles are painted on.
func (p *MapPanel) SelectLayer(layer int) {
	p.layer = layer
}

// Paint the tile at the position on the selected layer. The change is made on
// the next frame that the map is available for editing.
func (p *MapPanel) Paint(x, y int, tile int) {
	p.queue = append(p.queue, paint{x: x, y: y, layer: p.layer, tile: tile})
}

// Pending returns the number of edits that have not been applied.
func (p *MapPanel) Pending() int {
	return len(p.queue)
}

// Ready returns true if the map and tileset were available on the most
// recent frame.
func (p *MapPanel) Ready() bool {
	return p.ready
}

// Status returns a summary of the map from the most recent frame.
func (p *MapPanel) Status() string {
	return p.status
}

// Show implements the Panel interface.
func (p *MapPanel) Show(f *Frame) error {
	p.ready = false

	if f.FS == nil {
		p.closed = true
		return nil
	}

	key := project.MapKey(p.id)
	r := f.Cache.GetOrLoad(key)
	ts := f.Cache.GetOrLoad(project.TilesetsKey)

	for _, r := range []cache.Result{r, ts} {
		if r.State == cache.Failed {
			return r.Err
		}
	}
	if r.State != cache.Ready || ts.State != cache.Ready {
		p.status = "loading"
		f.Printf("%s: %s", p.Name(), p.status)
		return nil
	}

	m, ok := cache.As[*project.Map](r)
	if !ok {
		return curated.Errorf(cache.TypeMismatch, key, r.Handle.Value())
	}
	tilesets, ok := cache.As[project.Tilesets](ts)
	if !ok {
		return curated.Errorf(cache.TypeMismatch, project.TilesetsKey, ts.Handle.Value())
	}
	tileset, ok := tilesets.Get(m.TilesetID)
	if !ok {
		return curated.Errorf(MissingTileset, p.id, m.TilesetID)
	}

	p.apply(f)

	p.ready = true
	p.status = fmt.Sprintf("%dx%d, %d layers, tileset %s (%s)", m.Width, m.Height, m.Layers, tileset.Name, tileset.TilesetName)
	if f.Cache.IsDirty(key) {
		p.status += " [modified]"
	}
	f.Printf("%s: %s", p.Name(), p.status)

	return nil
}

// apply queued edits to the map document. if the document is borrowed by
// another panel then the edits stay in the queue until the next frame
func (p *MapPanel) apply(f *Frame) {
	if len(p.queue) == 0 {
		return
	}

	err := cache.MutateAs(f.Cache, project.MapKey(p.id), func(m *project.Map) error {
		for _, e := range p.queue {
			if !m.SetTile(e.x, e.y, e.layer, e.tile) {
				logger.Logf(logger.Allow, "map", "%d: paint outside map at %d,%d layer %d", p.id, e.x, e.y, e.layer)
			}
		}
		return nil
	})

	if err != nil {
		if !curated.Is(err, cache.BorrowConflict) {
			f.Errorf("%s: %v", p.Name(), err)
			p.queue = p.queue[:0]
		}
		return
	}

	p.queue = p.queue[:0]
}
