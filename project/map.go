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

package project

import (
	"fmt"
	"math"

	"github.com/jetsetilly/tilewright/curated"
)

// AudioFile refers to a sound in the project and how it should be played.
type AudioFile struct {
	Name   string `json:"name"`
	Volume int    `json:"volume"`
	Pitch  int    `json:"pitch"`
}

// Map is a single map document. Tiles are stored in layers, each layer being
// Width*Height tile IDs in row order.
type Map struct {
	ID          int        `json:"id"`
	TilesetID   int        `json:"tileset_id"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Layers      int        `json:"layers"`
	Data        []int      `json:"data"`
	AutoplayBGM bool       `json:"autoplay_bgm"`
	BGM         *AudioFile `json:"bgm,omitempty"`
	AutoplayBGS bool       `json:"autoplay_bgs"`
	BGS         *AudioFile `json:"bgs,omitempty"`
}

// DecodeMap decodes the data as a map. The ID declared by the map must be the
// ID that was expected.
func DecodeMap(id int, data []byte) (*Map, error) {
	what := fmt.Sprintf("map %d", id)

	m := &Map{}
	if err := decodeJSON(what, data, m); err != nil {
		return nil, err
	}

	if m.ID != id {
		return nil, curated.Errorf(FormatError, what, fmt.Sprintf("declared id is %d", m.ID))
	}
	if err := m.validate(); err != nil {
		return nil, curated.Errorf(FormatError, what, err)
	}

	return m, nil
}

// EncodeMap is the inverse of DecodeMap().
func EncodeMap(m *Map) ([]byte, error) {
	return encodeJSON(fmt.Sprintf("map %d", m.ID), m)
}

func (m *Map) validate() error {
	if m.Width < 0 || m.Height < 0 || m.Layers < 0 {
		return curated.Errorf("negative dimensions")
	}
	if m.TilesetID < 1 {
		return curated.Errorf("tileset id must be 1 or more")
	}
	n, ok := tileCount(m.Width, m.Height, m.Layers)
	if !ok {
		return curated.Errorf("dimensions %dx%dx%d are too large", m.Width, m.Height, m.Layers)
	}
	if len(m.Data) != n {
		return curated.Errorf("data length is %d but should be %d", len(m.Data), n)
	}
	return nil
}

// tileCount returns the product of the dimensions. Returns false if the
// product overflows. dimensions must not be negative
func tileCount(dims ...int) (int, bool) {
	n := 1
	for _, d := range dims {
		if d != 0 && n > math.MaxInt/d {
			return 0, false
		}
		n *= d
	}
	return n, true
}

func (m *Map) index(x, y, layer int) (int, bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height || layer < 0 || layer >= m.Layers {
		return 0, false
	}
	return layer*m.Width*m.Height + y*m.Width + x, true
}

// Tile returns the tile ID at the position in the layer. Returns false if the
// position is outside the map.
func (m *Map) Tile(x, y, layer int) (int, bool) {
	i, ok := m.index(x, y, layer)
	if !ok {
		return 0, false
	}
	return m.Data[i], true
}

// SetTile changes the tile ID at the position in the layer. Returns false if
// the position is outside the map.
func (m *Map) SetTile(x, y, layer int, tile int) bool {
	i, ok := m.index(x, y, layer)
	if !ok {
		return false
	}
	m.Data[i] = tile
	return true
}

// Fill every tile in the layer with the tile ID.
func (m *Map) Fill(layer int, tile int) bool {
	if layer < 0 || layer >= m.Layers {
		return false
	}
	n := m.Width * m.Height
	for i := layer * n; i < (layer+1)*n; i++ {
		m.Data[i] = tile
	}
	return true
}
