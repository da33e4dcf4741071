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

package project_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/test"
)

const mapJSON = `{
	// hand edited
	"id": 2,
	"tileset_id": 1,
	"width": 2,
	"height": 2,
	"layers": 2,
	"data": [1, 2, 3, 4, 0, 0, 0, 0,],
	"autoplay_bgm": true,
	"bgm": {"name": "Town", "volume": 80, "pitch": 100},
}`

func TestDecodeMap(t *testing.T) {
	m, err := project.DecodeMap(2, []byte(mapJSON))
	test.DemandSuccess(t, err)

	want := &project.Map{
		ID:          2,
		TilesetID:   1,
		Width:       2,
		Height:      2,
		Layers:      2,
		Data:        []int{1, 2, 3, 4, 0, 0, 0, 0},
		AutoplayBGM: true,
		BGM:         &project.AudioFile{Name: "Town", Volume: 80, Pitch: 100},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("map mismatch (-want +got):\n%s", diff)
	}
}

func TestMapTiles(t *testing.T) {
	m, err := project.DecodeMap(2, []byte(mapJSON))
	test.DemandSuccess(t, err)

	tile, ok := m.Tile(1, 1, 0)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, tile, 4)

	_, ok = m.Tile(2, 0, 0)
	test.ExpectFailure(t, ok)
	_, ok = m.Tile(0, -1, 0)
	test.ExpectFailure(t, ok)
	test.ExpectFailure(t, m.SetTile(0, 0, 2, 9))

	test.ExpectSuccess(t, m.SetTile(0, 1, 1, 9))
	tile, _ = m.Tile(0, 1, 1)
	test.ExpectEquality(t, tile, 9)
	test.ExpectEquality(t, m.Data[6], 9)

	test.ExpectSuccess(t, m.Fill(0, 5))
	test.ExpectFailure(t, m.Fill(2, 5))
	if diff := cmp.Diff([]int{5, 5, 5, 5, 0, 0, 9, 0}, m.Data); diff != "" {
		t.Errorf("tile data mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMapErrors(t *testing.T) {
	// declared id does not match the requested id
	_, err := project.DecodeMap(3, []byte(mapJSON))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// not JSON
	_, err = project.DecodeMap(1, []byte("id=1"))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// data is the wrong length
	_, err = project.DecodeMap(1, []byte(`{"id":1, "tileset_id":1, "width":2, "height":2, "layers":1, "data":[1,2,3]}`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// tileset ids start at 1
	_, err = project.DecodeMap(1, []byte(`{"id":1, "tileset_id":0, "width":0, "height":0, "layers":0, "data":[]}`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// the number of tiles overflows. the product wraps to zero and would
	// otherwise match the empty data
	_, err = project.DecodeMap(1, []byte(`{"id":1, "tileset_id":1, "width":4294967296, "height":4294967296, "layers":1, "data":[]}`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	_, err = project.DecodeMap(1, []byte(`{"id":1, "tileset_id":1, "width":9223372036854775807, "height":2, "layers":1, "data":[]}`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// a layer with no tiles is valid
	m, err := project.DecodeMap(1, []byte(`{"id":1, "tileset_id":1, "width":0, "height":4294967296, "layers":1, "data":[]}`))
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, m.SetTile(0, 0, 0, 5))
}

func TestEncodeMap(t *testing.T) {
	m, err := project.DecodeMap(2, []byte(mapJSON))
	test.DemandSuccess(t, err)
	m.SetTile(1, 0, 1, 7)

	data, err := project.EncodeMap(m)
	test.DemandSuccess(t, err)

	n, err := project.DecodeMap(2, data)
	test.DemandSuccess(t, err)
	if diff := cmp.Diff(m, n); diff != "" {
		t.Errorf("encoded map mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeTilesets(t *testing.T) {
	ts, err := project.DecodeTilesets([]byte(`[
		null,
		{"id": 1, "name": "Grassland", "tileset_name": "001-Grassland01", "autotile_names": ["Water"]},
		{"id": 2, "name": "Town", "tileset_name": "002-Town01"},
	]`))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(ts), 2)

	s, ok := ts.Get(1)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Name, "Grassland")
	if diff := cmp.Diff([]string{"Water"}, s.Autotiles); diff != "" {
		t.Errorf("autotiles mismatch (-want +got):\n%s", diff)
	}

	s, ok = ts.Get(2)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.TilesetName, "002-Town01")

	_, ok = ts.Get(0)
	test.ExpectFailure(t, ok)
	_, ok = ts.Get(3)
	test.ExpectFailure(t, ok)

	// ids out of order
	_, err = project.DecodeTilesets([]byte(`[{"id": 2}, {"id": 1}]`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	// null after the first entry
	_, err = project.DecodeTilesets([]byte(`[null, {"id": 1}, null]`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))
}

func TestDecodeMapInfos(t *testing.T) {
	infos, err := project.DecodeMapInfos([]byte(`{
		"3": {"name": "Cellar", "parent_id": 1, "order": 3},
		"1": {"name": "Town", "parent_id": 0, "order": 1, "expanded": true},
		"2": {"name": "Field", "parent_id": 0, "order": 2},
	}`))
	test.DemandSuccess(t, err)

	var names []string
	for _, m := range infos.Sorted() {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"Town", "Field", "Cellar"}, names); diff != "" {
		t.Errorf("sort order mismatch (-want +got):\n%s", diff)
	}

	c := infos.Children(1)
	test.DemandEquality(t, len(c), 1)
	test.ExpectEquality(t, c[0].ID, 3)
	test.ExpectEquality(t, len(infos.Children(0)), 2)

	_, err = project.DecodeMapInfos([]byte(`{"x": {"name": "Bad"}}`))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))
}
