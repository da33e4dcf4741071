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

	"github.com/jetsetilly/tilewright/curated"
)

// Tileset is a single entry in the tileset table.
type Tileset struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	TilesetName string   `json:"tileset_name"`
	Autotiles   []string `json:"autotile_names"`
	Passages    []int    `json:"passages"`
}

// Tilesets is the table of every tileset in the project. Tileset IDs start
// at 1.
type Tilesets []*Tileset

// DecodeTilesets decodes the tileset table. The table is an array of tilesets
// in ID order. The array may start with a null entry, which is ignored.
func DecodeTilesets(data []byte) (Tilesets, error) {
	var t Tilesets
	if err := decodeJSON("tilesets", data, &t); err != nil {
		return nil, err
	}

	if len(t) > 0 && t[0] == nil {
		t = t[1:]
	}

	for i, ts := range t {
		if ts == nil {
			return nil, curated.Errorf(FormatError, "tilesets", fmt.Sprintf("entry %d is null", i+1))
		}
		if ts.ID != i+1 {
			return nil, curated.Errorf(FormatError, "tilesets", fmt.Sprintf("entry %d has id %d", i+1, ts.ID))
		}
	}

	return t, nil
}

// Get returns the tileset with the ID. Returns false if there is no such
// tileset.
func (t Tilesets) Get(id int) (*Tileset, bool) {
	if id < 1 || id > len(t) {
		return nil, false
	}
	return t[id-1], true
}
