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

package notifications

import (
	"fmt"
	"time"

	"github.com/jetsetilly/tilewright/logger"
)

// Level indicates the importance of a notice.
type Level int

// List of valid Level values.
const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Notice is a single message for the user.
type Notice struct {
	Level   Level
	Message string
	Raised  time.Time

	// the number of times the same message has been raised while the notice
	// was active
	Repeat int
}

func (n Notice) String() string {
	if n.Repeat > 0 {
		return fmt.Sprintf("%s (repeat x%d)", n.Message, n.Repeat+1)
	}
	return n.Message
}

// Notify is implemented by types that accept notices.
type Notify interface {
	Notify(level Level, message string)
}

// DefaultLifetime is the lifetime of a notice created by NewToasts() when the
// lifetime argument is zero.
const DefaultLifetime = 5 * time.Second

// maximum number of active notices. the oldest notice is dropped to make
// room for a new notice
const maxActive = 10

// Toasts implements the Notify interface. Not safe for concurrent use.
type Toasts struct {
	active   []Notice
	lifetime time.Duration

	// returns the current time. replaced in tests
	now func() time.Time
}

// NewToasts is the preferred method of initialisation for the Toasts type.
func NewToasts(lifetime time.Duration) *Toasts {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Toasts{
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Notify implements the Notify interface. A message that is the same as the
// most recent active notice extends that notice rather than creating a new
// one.
func (t *Toasts) Notify(level Level, message string) {
	logger.Log(logger.Allow, level.String(), message)

	now := t.now()
	t.expire(now)

	if n := len(t.active); n > 0 {
		last := &t.active[n-1]
		if last.Level == level && last.Message == message {
			last.Repeat++
			last.Raised = now
			return
		}
	}

	if len(t.active) >= maxActive {
		t.active = t.active[1:]
	}
	t.active = append(t.active, Notice{Level: level, Message: message, Raised: now})
}

// Info raises a notice with the Info level.
func (t *Toasts) Info(format string, args ...any) {
	t.Notify(Info, fmt.Sprintf(format, args...))
}

// Warning raises a notice with the Warning level.
func (t *Toasts) Warning(format string, args ...any) {
	t.Notify(Warning, fmt.Sprintf(format, args...))
}

// Error raises a notice with the Error level.
func (t *Toasts) Error(format string, args ...any) {
	t.Notify(Error, fmt.Sprintf(format, args...))
}

func (t *Toasts) expire(now time.Time) {
	i := 0
	for i < len(t.active) && now.Sub(t.active[i].Raised) >= t.lifetime {
		i++
	}
	t.active = t.active[i:]
}

// Active returns the notices that have not expired, oldest first.
func (t *Toasts) Active() []Notice {
	t.expire(t.now())
	n := make([]Notice, len(t.active))
	copy(n, t.active)
	return n
}

// Clear all active notices.
func (t *Toasts) Clear() {
	t.active = t.active[:0]
}
