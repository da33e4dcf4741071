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

package remote_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/storage"
	"github.com/jetsetilly/tilewright/storage/memory"
	"github.com/jetsetilly/tilewright/storage/remote"
	"github.com/jetsetilly/tilewright/test"
)

func newServer(t *testing.T, readOnly bool) (*memory.Memory, *httptest.Server) {
	t.Helper()
	mem := memory.NewMemory()
	mem.Put("Data/Map001.json", []byte("map"))
	mem.Put("Data/MapInfos.json", []byte("infos"))
	mem.Put("Graphics/Tilesets/World.png", []byte("png"))

	srv := httptest.NewServer(remote.NewHandler(mem, readOnly))
	t.Cleanup(srv.Close)
	return mem, srv
}

func TestRemote(t *testing.T) {
	mem, srv := newServer(t, false)
	ctx := context.Background()

	rmt, err := remote.NewRemote(srv.URL+"/project", srv.Client(), 0, 0)
	test.DemandSuccess(t, err)

	// the handler is mounted at the root so the base path of the URL is part
	// of the path in the backend
	mem.Put("project/Data/Map001.json", []byte("map"))
	mem.Put("project/Data/Tilesets.json", []byte("tilesets"))

	data, err := rmt.ReadBytes(ctx, "Data/Map001.json")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(data), "map")

	_, err = rmt.ReadBytes(ctx, "Data/Map002.json")
	test.ExpectSuccess(t, curated.Is(err, storage.NotFound))

	err = rmt.WriteBytes(ctx, "Data/Map002.json", []byte("new map"))
	test.ExpectSuccess(t, err)
	data, err = mem.ReadBytes(ctx, "project/Data/Map002.json")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(data), "new map")

	ent, err := rmt.List(ctx, "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%v", ent), "[Data/]")

	ent, err = rmt.List(ctx, "Data")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%v", ent), "[Map001.json Map002.json Tilesets.json]")

	_, err = rmt.List(ctx, "Audio")
	test.ExpectSuccess(t, curated.Is(err, storage.NotFound))
}

func TestReadOnly(t *testing.T) {
	_, srv := newServer(t, true)

	rmt, err := remote.NewRemote(srv.URL, srv.Client(), 0, 0)
	test.DemandSuccess(t, err)

	err = rmt.WriteBytes(context.Background(), "Data/Map001.json", []byte("changed"))
	test.ExpectSuccess(t, curated.Is(err, storage.PermissionDenied))
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	rmt, err := remote.NewRemote(srv.URL, srv.Client(), 0, 0)
	test.DemandSuccess(t, err)

	_, err = rmt.ReadBytes(context.Background(), "foo")
	test.ExpectSuccess(t, curated.Is(err, storage.Fault))
}

func TestRateLimit(t *testing.T) {
	_, srv := newServer(t, false)

	// one request every hour. the first request uses the burst allowance and
	// the second must wait longer than the context allows
	rmt, err := remote.NewRemote(srv.URL, srv.Client(), 1.0/3600, 1)
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = rmt.ReadBytes(ctx, "Data/Map001.json")
	test.ExpectSuccess(t, err)

	_, err = rmt.ReadBytes(ctx, "Data/Map001.json")
	test.ExpectSuccess(t, curated.Is(err, storage.Fault))
}

func TestBadURL(t *testing.T) {
	_, err := remote.NewRemote("ftp://example.com", nil, 0, 0)
	test.ExpectFailure(t, err)
}
