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

package graphics

import (
	"bytes"
	"image"
	"image/draw"
	"sort"

	// image formats used by projects
	_ "image/jpeg"
	_ "image/png"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/sink"
)

// Sentinal error patterns.
const (
	DecodeError      = "graphics: decode: %v"
	BackendInitError = "graphics: backend: %v"
	TextureError     = "graphics: %v: %v"
)

// Texture is an image that has been uploaded to the renderer.
type Texture interface {
	sink.Releaser
	Size() (int, int)
}

// Factory creates textures.
type Factory interface {
	NewTexture(img *image.RGBA) (Texture, error)
}

// FactoryOpener creates the Factory. It is called when the first image is
// shown.
type FactoryOpener func() (Factory, error)

// Decode the image data. PNG and JPEG images are supported.
func Decode(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}
	return toRGBA(img), nil
}

// toRGBA converts the image to the RGBA format, with the origin of the bounds
// at (0,0).
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// Graphics is the render sink for images.
type Graphics struct {
	open    FactoryOpener
	factory Factory
	slots   map[string]*sink.Slot[Texture]
}

// NewGraphics is the preferred method of initialisation for the Graphics type.
func NewGraphics(open FactoryOpener) *Graphics {
	return &Graphics{
		open:  open,
		slots: make(map[string]*sink.Slot[Texture]),
	}
}

func (gfx *Graphics) backend() (Factory, error) {
	if gfx.factory != nil {
		return gfx.factory, nil
	}
	if gfx.open == nil {
		return nil, curated.Errorf(BackendInitError, "no renderer")
	}
	f, err := gfx.open()
	if err != nil {
		logger.Log(logger.Allow, "graphics", err)
		return nil, curated.Errorf(BackendInitError, err)
	}
	gfx.factory = f
	return f, nil
}

// Show the encoded image in the slot.
func (gfx *Graphics) Show(slot string, data []byte) error {
	img, err := Decode(data)
	if err != nil {
		return err
	}
	return gfx.ShowImage(slot, img)
}

// ShowImage is like Show() but for an image that has already been decoded.
func (gfx *Graphics) ShowImage(slot string, img image.Image) error {
	f, err := gfx.backend()
	if err != nil {
		return err
	}

	tex, err := f.NewTexture(toRGBA(img))
	if err != nil {
		return curated.Errorf(TextureError, slot, err)
	}

	s, ok := gfx.slots[slot]
	if !ok {
		s = &sink.Slot[Texture]{}
		gfx.slots[slot] = s
	}
	s.Install(tex)

	return nil
}

// Texture returns the texture in the slot. Returns false if the slot is empty.
func (gfx *Graphics) Texture(slot string) (Texture, bool) {
	s, ok := gfx.slots[slot]
	if !ok {
		return nil, false
	}
	return s.Live()
}

// Clear the slot, releasing the texture. It is safe to clear an empty slot.
func (gfx *Graphics) Clear(slot string) {
	if s, ok := gfx.slots[slot]; ok {
		s.Release()
		delete(gfx.slots, slot)
	}
}

// Slots returns the names of the occupied slots in alphabetical order.
func (gfx *Graphics) Slots() []string {
	var names []string
	for n, s := range gfx.slots {
		if _, ok := s.Live(); ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// Close releases every texture.
func (gfx *Graphics) Close() {
	for n := range gfx.slots {
		gfx.Clear(n)
	}
	gfx.factory = nil
}
