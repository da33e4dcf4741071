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
	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/graphics"
)

// Categories of resource in a project.
const (
	// documents
	Maps             cache.Category = "maps"
	TilesetsCategory cache.Category = "tilesets"
	MapInfosCategory cache.Category = "mapinfos"

	// assets. the path of the key is relative to the graphics or audio
	// directory and does not include the file extension
	Images cache.Category = "images"
	Sounds cache.Category = "sounds"
)

// the tileset table and the map tree are single documents. they are keyed
// with this ID
const tableID = 0

// TilesetsKey is the cache key for the tileset table.
var TilesetsKey = cache.DocumentID(TilesetsCategory, tableID)

// MapInfosKey is the cache key for the map tree.
var MapInfosKey = cache.DocumentID(MapInfosCategory, tableID)

// MapKey returns the cache key for the map with the ID.
func MapKey(id int) cache.Key {
	return cache.DocumentID(Maps, id)
}

// ImageKey returns the cache key for an image. For example, "Icons/001-Weapon01".
func ImageKey(name string) cache.Key {
	return cache.AssetPath(Images, name)
}

// SoundKey returns the cache key for a sound in the directory for the
// source.
func SoundKey(src audio.Source, name string) cache.Key {
	return cache.AssetPath(Sounds, src.String()+"/"+name)
}

// image and sound files are tried with each extension in turn. the bare name
// is tried last so that a key can include the extension
var (
	imageExtensions = []string{".png", ".jpg"}
	soundExtensions = []string{".wav", ".mp3"}
)

func candidates(base string, ext []string) []string {
	c := make([]string, 0, len(ext)+1)
	for _, e := range ext {
		c = append(c, base+e)
	}
	return append(c, base)
}

// Register installs the Locator and Decoder for every category of resource
// in the cache.
func Register(c *cache.Cache, man Manifest) {
	c.Register(Maps,
		func(key cache.Key) []string {
			return []string{man.MapPath(key.ID)}
		},
		func(key cache.Key, data []byte) (any, error) {
			return DecodeMap(key.ID, data)
		})

	c.Register(TilesetsCategory,
		func(_ cache.Key) []string {
			return []string{man.TilesetsPath()}
		},
		func(_ cache.Key, data []byte) (any, error) {
			return DecodeTilesets(data)
		})

	c.Register(MapInfosCategory,
		func(_ cache.Key) []string {
			return []string{man.MapInfosPath()}
		},
		func(_ cache.Key, data []byte) (any, error) {
			return DecodeMapInfos(data)
		})

	c.Register(Images,
		func(key cache.Key) []string {
			return candidates(man.GraphicsPath(key.Path), imageExtensions)
		},
		func(_ cache.Key, data []byte) (any, error) {
			return graphics.Decode(data)
		})

	c.Register(Sounds,
		func(key cache.Key) []string {
			return candidates(man.AudioPath(key.Path), soundExtensions)
		},
		func(_ cache.Key, data []byte) (any, error) {
			return audio.Decode(data)
		})
}
