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

package sdltexture

import (
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/graphics"

	"github.com/veandco/go-sdl2/sdl"
)

// Window is a plain SDL window with a renderer. All functions must be called
// from the main thread.
type Window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
}

// OpenWindow creates a window of the given size with an accelerated renderer.
func OpenWindow(title string, width, height int32) (*Window, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdltexture: %v", err)
	}

	win := &Window{}

	win.window, err = sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf("sdltexture: %v", err)
	}

	win.renderer, err = sdl.CreateRenderer(win.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		win.Destroy()
		return nil, curated.Errorf("sdltexture: %v", err)
	}

	return win, nil
}

// Opener returns a graphics.FactoryOpener for textures drawn in the window.
func (win *Window) Opener() graphics.FactoryOpener {
	return Opener(win.renderer)
}

// Destroy the window. Textures created for the window should be released
// first.
func (win *Window) Destroy() {
	if win.renderer != nil {
		_ = win.renderer.Destroy()
		win.renderer = nil
	}
	if win.window != nil {
		_ = win.window.Destroy()
		win.window = nil
	}
	sdl.Quit()
}

// Service handles pending window events. Returns false if the window has been
// closed.
func (win *Window) Service() bool {
	open := true
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			open = false
		case *sdl.KeyboardEvent:
			if ev.Keysym.Sym == sdl.K_ESCAPE {
				open = false
			}
		}
	}
	return open
}

// Present clears the window and draws the texture centred. The texture may be
// nil, in which case the window is only cleared. Textures from other factories
// are ignored.
func (win *Window) Present(tex graphics.Texture) error {
	_ = win.renderer.SetDrawColor(32, 32, 32, 255)
	if err := win.renderer.Clear(); err != nil {
		return curated.Errorf("sdltexture: %v", err)
	}

	if t, ok := tex.(*Texture); ok && t.SDL() != nil {
		ww, wh := win.window.GetSize()
		tw, th := t.Size()
		dst := &sdl.Rect{
			X: (ww - int32(tw)) / 2,
			Y: (wh - int32(th)) / 2,
			W: int32(tw),
			H: int32(th),
		}
		if err := win.renderer.Copy(t.SDL(), nil, dst); err != nil {
			return curated.Errorf("sdltexture: %v", err)
		}
	}

	win.renderer.Present()
	return nil
}
