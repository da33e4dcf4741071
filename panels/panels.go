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

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/graphics"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/notifications"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/storage"
)

// Frame is everything a panel needs to show itself for one frame. A new
// Frame is created by the editor session on every frame.
type Frame struct {
	// the number of the frame. starts at one
	Number uint64

	Cache    *cache.Cache
	Manifest project.Manifest

	// filesystem of the open project. nil if there is no project
	FS storage.Filesystem

	Audio    *audio.Audio
	Graphics *graphics.Graphics
	Notify   notifications.Notify

	// volume and pitch used when a sound does not specify its own
	Volume int
	Pitch  int

	lines []string
}

// Printf adds a line of output to the frame.
func (f *Frame) Printf(format string, args ...any) {
	f.lines = append(f.lines, fmt.Sprintf(format, args...))
}

// Lines returns the output added to the frame.
func (f *Frame) Lines() []string {
	return f.lines
}

// Errorf raises an error notice.
func (f *Frame) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if f.Notify == nil {
		logger.Log(logger.Allow, "panels", msg)
		return
	}
	f.Notify.Notify(notifications.Error, msg)
}

// Panel is implemented by every panel.
type Panel interface {
	// the name of the panel. no two open panels have the same name
	Name() string

	// show the panel. called once per frame
	Show(f *Frame) error

	// whether the panel needs an open project. these panels are closed when
	// the project is closed
	RequiresFilesystem() bool

	// whether the panel should be closed. checked after every call to Show()
	ForceClose() bool
}
