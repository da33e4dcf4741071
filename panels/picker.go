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

package panels

import (
	"fmt"
	"image"
	"path"

	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/project"
	"github.com/sahilm/fuzzy"
)

// GraphicPicker lists the images in a graphics directory and allows one to be
// selected. The selected image is shown in the graphics slot named after the
// panel.
type GraphicPicker struct {
	dir  string
	list listing

	// images that are ready, in listing order
	icons []string

	// images that failed to load. each failure is reported once
	failed map[string]bool

	loading int

	filter  string
	matches []fuzzy.Match

	selected string
	shown    string

	closed bool
}

// NewGraphicPicker is the preferred method of initialisation for the
// GraphicPicker type. The directory is relative to the graphics directory of
// the project. For example, "Icons".
func NewGraphicPicker(dir string) *GraphicPicker {
	return &GraphicPicker{
		dir:    dir,
		failed: make(map[string]bool),
	}
}

// Name implements the Panel interface.
func (p *GraphicPicker) Name() string {
	return fmt.Sprintf("Graphic Picker: %s", p.dir)
}

// RequiresFilesystem implements the Panel interface.
func (p *GraphicPicker) RequiresFilesystem() bool {
	return true
}

// ForceClose implements the Panel interface.
func (p *GraphicPicker) ForceClose() bool {
	return p.closed
}

// Close the panel at the end of the next frame.
func (p *GraphicPicker) Close() {
	p.closed = true
}

// Refresh lists the directory again on the next frame.
func (p *GraphicPicker) Refresh() {
	p.list.reset()
	clear(p.failed)
}

// SetFilter changes the fuzzy filter applied to the image names. An empty
// filter matches every image.
func (p *GraphicPicker) SetFilter(filter string) {
	p.filter = filter
	p.applyFilter()
}

// Select the named image. The image is shown on the next frame, once it is
// ready.
func (p *GraphicPicker) Select(name string) {
	p.selected = name
}

// Selected returns the name of the selected image.
func (p *GraphicPicker) Selected() string {
	return p.selected
}

// Icons returns the names of the images that are ready, in listing order.
func (p *GraphicPicker) Icons() []string {
	return p.icons
}

// Matches returns the names of the images that match the filter, best match
// first.
func (p *GraphicPicker) Matches() []string {
	m := make([]string, len(p.matches))
	for i := range p.matches {
		m[i] = p.matches[i].Str
	}
	return m
}

func (p *GraphicPicker) applyFilter() {
	if p.filter == "" {
		p.matches = make([]fuzzy.Match, len(p.icons))
		for i, n := range p.icons {
			p.matches[i] = fuzzy.Match{Str: n, Index: i}
		}
		return
	}
	p.matches = fuzzy.Find(p.filter, p.icons)
}

func (p *GraphicPicker) key(name string) cache.Key {
	return project.ImageKey(path.Join(p.dir, name))
}

// Show implements the Panel interface.
func (p *GraphicPicker) Show(f *Frame) error {
	if f.FS == nil {
		p.closed = true
		return nil
	}

	if p.list.dir == "" {
		p.list.dir = f.Manifest.GraphicsPath(p.dir)
	}

	names, done, err := p.list.poll(f.FS)
	if err != nil {
		return err
	}
	if !done {
		f.Printf("%s: listing", p.Name())
		return nil
	}

	p.icons = p.icons[:0]
	p.loading = 0
	for _, n := range names {
		if p.failed[n] {
			continue
		}

		r := f.Cache.GetOrLoad(p.key(n))
		switch r.State {
		case cache.Ready:
			p.icons = append(p.icons, n)
		case cache.Failed:
			p.failed[n] = true
			f.Errorf("Cannot load `%s` icon: %v", n, r.Err)
		default:
			p.loading++
		}
	}
	p.applyFilter()

	p.showSelected(f)

	f.Printf("%s: %d ready, %d loading, %d failed", p.Name(), len(p.icons), p.loading, len(p.failed))

	return nil
}

func (p *GraphicPicker) showSelected(f *Frame) {
	if p.selected == p.shown || f.Graphics == nil {
		return
	}

	if p.selected == "" {
		f.Graphics.Clear(p.Name())
		p.shown = ""
		return
	}

	img, ok := cache.As[*image.RGBA](f.Cache.Peek(p.key(p.selected)))
	if !ok {
		return
	}

	// the selection is recorded as shown even if there was an error. the
	// error is only reported once
	p.shown = p.selected
	if err := f.Graphics.ShowImage(p.Name(), img); err != nil {
		f.Errorf("Cannot show `%s` icon: %v", p.selected, err)
	}
}
