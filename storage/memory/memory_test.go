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

package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/jetsetilly/tilewright/storage/memory"
	"github.com/jetsetilly/tilewright/test"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewMemory()

	mem.Put("Data/Map001.json", []byte("map"))
	mem.Put("Data/Tilesets.json", []byte("tilesets"))
	test.ExpectSuccess(t, mem.WriteBytes(ctx, "Audio/BGM/theme.wav", []byte("wav")))
	test.ExpectEquality(t, mem.Len(), 3)

	data, err := mem.ReadBytes(ctx, "Data/Map001.json")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(data), "map")

	// the returned data is a copy
	data[0] = 'x'
	data, _ = mem.ReadBytes(ctx, "Data/Map001.json")
	test.ExpectEquality(t, string(data), "map")

	_, err = mem.ReadBytes(ctx, "Data/Map002.json")
	test.ExpectSuccess(t, curated.Is(err, storage.NotFound))

	ent, err := mem.List(ctx, "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%v", ent), "[Audio/ Data/]")

	ent, err = mem.List(ctx, "Audio")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%v", ent), "[BGM/]")

	ent, err = mem.List(ctx, "Data")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%v", ent), "[Map001.json Tilesets.json]")

	_, err = mem.List(ctx, "Graphics")
	test.ExpectSuccess(t, curated.Is(err, storage.NotFound))
}

func TestLatency(t *testing.T) {
	mem := memory.NewMemory()
	mem.Put("a", []byte("a"))
	mem.SetLatency(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mem.ReadBytes(ctx, "a")
	test.ExpectSuccess(t, curated.Is(err, storage.Fault))
}

// the memory backend behind the asynchronous adaptor
func TestAsync(t *testing.T) {
	mem := memory.NewMemory()
	mem.Put("a", []byte("a"))
	mem.SetLatency(5 * time.Millisecond)

	fs := storage.NewAsync(context.Background(), mem, 2)

	p := fs.ReadBytes("a")
	_, done, _ := p.Poll()
	test.ExpectFailure(t, done)

	var data []byte
	var err error
	for !done {
		time.Sleep(time.Millisecond)
		data, done, err = p.Poll()
	}
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(data), "a")
}
