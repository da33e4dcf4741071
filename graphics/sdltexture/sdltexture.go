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

// Package sdltexture implements the graphics.Factory interface with an SDL
// renderer.
package sdltexture

import (
	"image"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/graphics"

	"github.com/veandco/go-sdl2/sdl"
)

// Factory creates textures for an SDL renderer.
type Factory struct {
	renderer *sdl.Renderer
}

// NewFactory is the preferred method of initialisation for the Factory type.
func NewFactory(renderer *sdl.Renderer) *Factory {
	return &Factory{renderer: renderer}
}

// Opener returns a graphics.FactoryOpener for the renderer.
func Opener(renderer *sdl.Renderer) graphics.FactoryOpener {
	return func() (graphics.Factory, error) {
		if renderer == nil {
			return nil, curated.Errorf("sdltexture: no renderer")
		}
		return NewFactory(renderer), nil
	}
}

// NewTexture implements the graphics.Factory interface.
func (f *Factory) NewTexture(img *image.RGBA) (graphics.Texture, error) {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, curated.Errorf("sdltexture: empty image")
	}

	tex, err := f.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING), int32(w), int32(h))
	if err != nil {
		return nil, curated.Errorf("sdltexture: %v", err)
	}

	pixels, pitch, err := tex.Lock(nil)
	if err != nil {
		tex.Destroy()
		return nil, curated.Errorf("sdltexture: %v", err)
	}

	// the pitch of the texture may be different to the stride of the image
	for y := 0; y < h; y++ {
		copy(pixels[y*pitch:y*pitch+w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}

	tex.Unlock()

	return &Texture{tex: tex, w: w, h: h}, nil
}

// Texture implements the graphics.Texture interface.
type Texture struct {
	tex  *sdl.Texture
	w, h int
}

// Release implements the graphics.Texture interface.
func (t *Texture) Release() {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}

// Size implements the graphics.Texture interface.
func (t *Texture) Size() (int, int) {
	return t.w, t.h
}

// SDL returns the underlying SDL texture. Returns nil if the texture has been
// released.
func (t *Texture) SDL() *sdl.Texture {
	return t.tex
}
