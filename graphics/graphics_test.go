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

package graphics_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/graphics"
	"github.com/jetsetilly/tilewright/test"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var b bytes.Buffer
	test.DemandSuccess(t, png.Encode(&b, img))
	return b.Bytes()
}

type texture struct {
	w, h     int
	released bool
}

func (tex *texture) Release()         { tex.released = true }
func (tex *texture) Size() (int, int) { return tex.w, tex.h }

type factory struct {
	textures []*texture
}

func (f *factory) NewTexture(img *image.RGBA) (graphics.Texture, error) {
	tex := &texture{w: img.Bounds().Dx(), h: img.Bounds().Dy()}
	f.textures = append(f.textures, tex)
	return tex, nil
}

func TestDecode(t *testing.T) {
	img, err := graphics.Decode(makePNG(t, 4, 3))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 4)
	test.ExpectEquality(t, img.Bounds().Dy(), 3)
	test.ExpectEquality(t, img.RGBAAt(1, 1), color.RGBA{R: 255, A: 255})

	_, err = graphics.Decode([]byte("not an image"))
	test.ExpectSuccess(t, curated.Is(err, graphics.DecodeError))
}

func TestShow(t *testing.T) {
	f := &factory{}
	opened := 0
	gfx := graphics.NewGraphics(func() (graphics.Factory, error) {
		opened++
		return f, nil
	})

	test.ExpectSuccess(t, gfx.Show("tileset", makePNG(t, 8, 8)))
	test.ExpectSuccess(t, gfx.Show("tileset", makePNG(t, 16, 8)))
	test.ExpectSuccess(t, gfx.Show("icon", makePNG(t, 2, 2)))
	test.ExpectEquality(t, opened, 1)
	test.DemandEquality(t, len(f.textures), 3)

	// the first texture in the slot has been released
	test.ExpectSuccess(t, f.textures[0].released)
	test.ExpectFailure(t, f.textures[1].released)

	tex, ok := gfx.Texture("tileset")
	test.DemandSuccess(t, ok)
	w, h := tex.Size()
	test.ExpectEquality(t, w, 16)
	test.ExpectEquality(t, h, 8)

	test.ExpectEquality(t, fmt.Sprintf("%v", gfx.Slots()), "[icon tileset]")

	gfx.Clear("icon")
	gfx.Clear("icon")
	test.ExpectSuccess(t, f.textures[2].released)
	_, ok = gfx.Texture("icon")
	test.ExpectFailure(t, ok)

	gfx.Close()
	test.ExpectSuccess(t, f.textures[1].released)
	test.ExpectEquality(t, len(gfx.Slots()), 0)
}

func TestShowErrors(t *testing.T) {
	gfx := graphics.NewGraphics(func() (graphics.Factory, error) {
		return nil, fmt.Errorf("no renderer")
	})

	err := gfx.Show("tileset", makePNG(t, 8, 8))
	test.ExpectSuccess(t, curated.Is(err, graphics.BackendInitError))

	err = gfx.Show("tileset", []byte("garbage"))
	test.ExpectSuccess(t, curated.Is(err, graphics.DecodeError))

	_, ok := gfx.Texture("tileset")
	test.ExpectFailure(t, ok)
}
