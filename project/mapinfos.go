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
	"sort"
	"strconv"

	"github.com/jetsetilly/tilewright/curated"
)

// MapInfo is the entry for a map in the map tree.
type MapInfo struct {
	ID       int    `json:"-"`
	Name     string `json:"name"`
	ParentID int    `json:"parent_id"`
	Order    int    `json:"order"`
	Expanded bool   `json:"expanded"`
}

// MapInfos is the map tree. Maps with a ParentID of zero are at the top of the
// tree.
type MapInfos map[int]*MapInfo

// DecodeMapInfos decodes the map tree. The tree is a JSON object keyed by map
// ID.
func DecodeMapInfos(data []byte) (MapInfos, error) {
	var raw map[string]*MapInfo
	if err := decodeJSON("mapinfos", data, &raw); err != nil {
		return nil, err
	}

	infos := make(MapInfos, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(k)
		if err != nil || id < 1 {
			return nil, curated.Errorf(FormatError, "mapinfos", fmt.Sprintf("invalid map id %q", k))
		}
		if v == nil {
			return nil, curated.Errorf(FormatError, "mapinfos", fmt.Sprintf("map %d is null", id))
		}
		v.ID = id
		infos[id] = v
	}

	return infos, nil
}

// Sorted returns the entries in the order they should be displayed.
func (m MapInfos) Sorted() []*MapInfo {
	s := make([]*MapInfo, 0, len(m))
	for _, v := range m {
		s = append(s, v)
	}
	sort.Slice(s, func(i, j int) bool {
		if s[i].Order != s[j].Order {
			return s[i].Order < s[j].Order
		}
		return s[i].ID < s[j].ID
	})
	return s
}

// Children returns the entries with the parent ID, in display order.
func (m MapInfos) Children(parent int) []*MapInfo {
	var c []*MapInfo
	for _, v := range m.Sorted() {
		if v.ParentID == parent {
			c = append(c, v)
		}
	}
	return c
}
