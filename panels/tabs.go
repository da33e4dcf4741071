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
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
)

// Sentinal error patterns.
const (
	PanelError = "panels: %s: %v"
)

// Tabs is an ordered collection of panels, one of which has the focus.
type Tabs struct {
	panels  []Panel
	focused int
}

// NewTabs is the preferred method of initialisation for the Tabs type.
func NewTabs(panels ...Panel) *Tabs {
	t := &Tabs{}
	for _, p := range panels {
		t.Add(p)
	}
	return t
}

func (t *Tabs) index(name string) int {
	for i, p := range t.panels {
		if p.Name() == name {
			return i
		}
	}
	return -1
}

// Add a panel and give it the focus. If a panel with the same name is already
// open then that panel is given the focus instead and false is returned.
func (t *Tabs) Add(p Panel) bool {
	if i := t.index(p.Name()); i >= 0 {
		t.focused = i
		return false
	}
	t.panels = append(t.panels, p)
	t.focused = len(t.panels) - 1
	return true
}

// Clean removes every panel for which the remove function returns true.
func (t *Tabs) Clean(remove func(p Panel) bool) {
	name := t.FocusedName()

	n := 0
	for _, p := range t.panels {
		if remove(p) {
			logger.Logf(logger.Allow, "tabs", "closed %s", p.Name())
			continue
		}
		t.panels[n] = p
		n++
	}
	clear(t.panels[n:])
	t.panels = t.panels[:n]

	t.focused = max(t.index(name), 0)
}

// Focus gives the focus to the named panel. Returns false if there is no
// such panel.
func (t *Tabs) Focus(name string) bool {
	i := t.index(name)
	if i < 0 {
		return false
	}
	t.focused = i
	return true
}

// FocusedName returns the name of the panel with the focus. Returns the empty
// string if there are no panels.
func (t *Tabs) FocusedName() string {
	if len(t.panels) == 0 {
		return ""
	}
	return t.panels[t.focused].Name()
}

// Len returns the number of panels.
func (t *Tabs) Len() int {
	return len(t.panels)
}

// Names returns the name of every panel in order.
func (t *Tabs) Names() []string {
	n := make([]string, len(t.panels))
	for i, p := range t.panels {
		n[i] = p.Name()
	}
	return n
}

// Show every panel. A panel that returns an error is reported with a notice
// and closed. Panels that ask to be closed are removed after every panel has
// been shown.
//
// Returns the error from the first panel that failed.
func (t *Tabs) Show(f *Frame) error {
	var first error
	failed := make([]bool, len(t.panels))

	for i, p := range t.panels {
		if err := p.Show(f); err != nil {
			err = curated.Errorf(PanelError, p.Name(), err)
			f.Errorf("%v", err)
			failed[i] = true
			if first == nil {
				first = err
			}
		}
	}

	// Clean() visits the panels in order
	i := 0
	t.Clean(func(p Panel) bool {
		r := failed[i] || p.ForceClose()
		i++
		return r
	})

	return first
}
