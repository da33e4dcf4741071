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

package assert

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
)

// GetGoRoutineID returns an identify for a goroutine. it returns a result that
// is only useful for comparison with another call to GetGoRoutineID(). it
// should not be used for anything other than debugging
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Thread records the goroutine it was created in. The zero value of Thread
// performs no checks
type Thread struct {
	id      uint64
	enabled bool
}

// NewThread creates a Thread for the current goroutine. If enabled is false
// the Check() function will do nothing
func NewThread(enabled bool) Thread {
	if !enabled {
		return Thread{}
	}
	return Thread{
		id:      GetGoRoutineID(),
		enabled: true,
	}
}

// Check panics if it is called from a goroutine other than the one that
// created the Thread
func (t Thread) Check(caller string) {
	if !t.enabled {
		return
	}
	if id := GetGoRoutineID(); id != t.id {
		panic(fmt.Sprintf("%s: called from goroutine %d but owned by goroutine %d", caller, id, t.id))
	}
}
