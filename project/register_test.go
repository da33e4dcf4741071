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
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/jetsetilly/tilewright/storage/storagetest"
	"github.com/jetsetilly/tilewright/test"
)

func TestManifest(t *testing.T) {
	m, err := project.DecodeManifest([]byte(`
title = "Quest"

[layout]
data = "Database"
map_file = "map_%d.json"
`))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Title, "Quest")
	test.ExpectEquality(t, m.MapPath(7), "Database/map_7.json")
	test.ExpectEquality(t, m.TilesetsPath(), "Database/Tilesets.json")
	test.ExpectEquality(t, m.GraphicsPath("Icons"), "Graphics/Icons")
	test.ExpectEquality(t, m.AudioPath("BGM", "Town"), "Audio/BGM/Town")

	def := project.DefaultManifest()
	test.ExpectEquality(t, def.MapPath(1), "Data/Map001.json")
	test.ExpectEquality(t, def.MapInfosPath(), "Data/MapInfos.json")

	// empty manifest is the default manifest
	m, err = project.DecodeManifest(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m, def)

	_, err = project.DecodeManifest([]byte(`title = `))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	_, err = project.DecodeManifest([]byte("[layout]\nmap_file = \"map.json\""))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))

	_, err = project.DecodeManifest([]byte("[layout]\naudio = \"../elsewhere\""))
	test.ExpectSuccess(t, curated.Is(err, project.FormatError))
}

// service the cache until nothing is in flight
func settle(c *cache.Cache, fs *storagetest.FS) {
	for i := 0; i < 10 && c.Stats().InFlight > 0; i++ {
		fs.Complete()
		c.Poll()
	}
}

func newProject() (*cache.Cache, *storagetest.FS) {
	fs := storagetest.NewFS()
	c := cache.NewCache(fs, false)
	project.Register(c, project.DefaultManifest())
	return c, fs
}

func TestRegisterDocuments(t *testing.T) {
	c, fs := newProject()
	fs.Put("Data/Map002.json", []byte(mapJSON))
	fs.Put("Data/Tilesets.json", []byte(`[null, {"id": 1, "name": "Grassland"}]`))

	test.ExpectEquality(t, c.GetOrLoad(project.MapKey(2)).State, cache.Loading)
	test.ExpectEquality(t, c.GetOrLoad(project.TilesetsKey).State, cache.Loading)
	test.ExpectEquality(t, c.GetOrLoad(project.MapInfosKey).State, cache.Loading)
	settle(c, fs)

	m, ok := cache.As[*project.Map](c.GetOrLoad(project.MapKey(2)))
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, m.TilesetID, 1)

	ts, ok := cache.As[project.Tilesets](c.GetOrLoad(project.TilesetsKey))
	test.DemandSuccess(t, ok)
	s, ok := ts.Get(m.TilesetID)
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Name, "Grassland")

	r := c.GetOrLoad(project.MapInfosKey)
	test.ExpectEquality(t, r.State, cache.Failed)
	test.ExpectSuccess(t, curated.Is(r.Err, storage.NotFound))
}

func TestTableKeys(t *testing.T) {
	test.ExpectEquality(t, project.TilesetsKey, cache.DocumentID(project.TilesetsCategory, 0))
	test.ExpectEquality(t, project.MapInfosKey, cache.DocumentID(project.MapInfosCategory, 0))

	c, fs := newProject()
	test.ExpectSuccess(t, c.Registered(project.TilesetsCategory))
	test.ExpectSuccess(t, c.Registered(project.MapInfosCategory))

	fs.Put("Data/Tilesets.json", []byte(`[null, {"id": 1, "name": "Grassland"}]`))
	c.GetOrLoad(project.TilesetsKey)
	settle(c, fs)

	_, ok := cache.As[project.Tilesets](c.GetOrLoad(project.TilesetsKey))
	test.ExpectSuccess(t, ok)

	// the tileset table is reloaded when its category is invalidated
	c.InvalidateCategory(project.TilesetsCategory)
	test.ExpectEquality(t, c.Peek(project.TilesetsKey).State, cache.Unloaded)
}

func TestRegisterAssets(t *testing.T) {
	c, fs := newProject()

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 2, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	test.DemandSuccess(t, png.Encode(&buf, img))
	fs.Put("Graphics/Icons/sword.png", buf.Bytes())
	fs.Put("Graphics/Icons/broken.png", []byte("not an image"))

	sword := project.ImageKey("Icons/sword")
	broken := project.ImageKey("Icons/broken")
	c.GetOrLoad(sword)
	c.GetOrLoad(broken)
	settle(c, fs)

	rgba, ok := cache.As[*image.RGBA](c.GetOrLoad(sword))
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, rgba.Bounds().Dx(), 2)
	test.ExpectEquality(t, rgba.Bounds().Dy(), 3)
	test.ExpectEquality(t, rgba.RGBAAt(1, 2).R, uint8(255))

	r := c.GetOrLoad(broken)
	test.ExpectEquality(t, r.State, cache.Failed)
	test.ExpectFailure(t, storage.IsIOError(r.Err))

	// the sound is not present with any extension
	town := project.SoundKey(audio.BGM, "Town")
	c.GetOrLoad(town)
	settle(c, fs)
	r = c.GetOrLoad(town)
	test.ExpectEquality(t, r.State, cache.Failed)
	test.ExpectSuccess(t, curated.Is(r.Err, storage.NotFound))
	test.ExpectEquality(t, fs.Reads("Audio/BGM/Town.wav"), 1)
	test.ExpectEquality(t, fs.Reads("Audio/BGM/Town.mp3"), 1)
	test.ExpectEquality(t, fs.Reads("Audio/BGM/Town"), 1)
}
