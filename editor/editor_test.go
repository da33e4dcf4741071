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

package editor_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/editor"
	"github.com/jetsetilly/tilewright/panels"
	"github.com/jetsetilly/tilewright/preferences"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/storage/memory"
	"github.com/jetsetilly/tilewright/storage/packed"
	"github.com/jetsetilly/tilewright/test"
)

const mapJSON = `{"id": 1, "tileset_id": 1, "width": 2, "height": 1, "layers": 1, "data": [0, 0]}`
const tilesetsJSON = `[null, {"id": 1, "name": "Town"}]`

func newPrefs(t *testing.T) *preferences.Preferences {
	t.Helper()
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), preferences.DefaultFile))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, p.CheckThread.Set(true))
	return p
}

func newProject() *memory.Memory {
	m := memory.NewMemory()
	m.Put("Data/Map001.json", []byte(mapJSON))
	m.Put("Data/Tilesets.json", []byte(tilesetsJSON))
	return m
}

// service the editor until the condition is true
func serviceUntil(t *testing.T, ed *editor.Editor, cond func() bool) []string {
	t.Helper()
	var lines []string
	for i := 0; i < 500; i++ {
		lines = ed.Service()
		if cond() {
			return lines
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met")
	return nil
}

func TestEditSave(t *testing.T) {
	ed := editor.NewEditor(newPrefs(t), nil, nil)
	defer ed.Close()

	backend := newProject()
	test.DemandSuccess(t, ed.OpenBackend(context.Background(), backend, nil))
	test.ExpectSuccess(t, ed.IsOpen())
	test.ExpectEquality(t, ed.Manifest().Title, "Untitled")

	p := panels.NewMapPanel(1, "Town")
	test.DemandSuccess(t, ed.Add(p))
	test.ExpectEquality(t, ed.Tabs().FocusedName(), "Map 1: Town")

	lines := serviceUntil(t, ed, p.Ready)
	test.ExpectEquality(t, len(lines), 2)

	p.Paint(1, 0, 9)
	serviceUntil(t, ed, func() bool { return p.Pending() == 0 })
	test.ExpectSuccess(t, ed.Cache().IsDirty(project.MapKey(1)))

	n, err := ed.Save()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 1)
	test.ExpectFailure(t, ed.Cache().IsDirty(project.MapKey(1)))

	data, err := backend.ReadBytes(context.Background(), "Data/Map001.json")
	test.DemandSuccess(t, err)
	m, err := project.DecodeMap(1, data)
	test.DemandSuccess(t, err)
	tile, _ := m.Tile(1, 0, 0)
	test.ExpectEquality(t, tile, 9)

	// nothing to save
	n, err = ed.Save()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)
}

func TestManifest(t *testing.T) {
	ed := editor.NewEditor(newPrefs(t), nil, nil)
	defer ed.Close()

	backend := memory.NewMemory()
	backend.Put(project.ManifestFile, []byte("title = \"Quest\"\n[layout]\ndata = \"db\""))
	backend.Put("db/Map001.json", []byte(mapJSON))
	backend.Put("db/Tilesets.json", []byte(tilesetsJSON))

	test.DemandSuccess(t, ed.OpenBackend(context.Background(), backend, nil))
	test.ExpectEquality(t, ed.Manifest().Title, "Quest")

	test.DemandSuccess(t, ed.OpenMap(1, "Town"))
	serviceUntil(t, ed, func() bool {
		return ed.Cache().Peek(project.MapKey(1)).State == cache.Ready
	})

	// a broken manifest means the project is not opened
	backend.Put(project.ManifestFile, []byte("title = "))
	err := ed.OpenBackend(context.Background(), backend, nil)
	test.ExpectSuccess(t, curated.Is(err, editor.ManifestErr))
	test.ExpectFailure(t, ed.IsOpen())
	test.ExpectEquality(t, ed.Tabs().Len(), 1)
}

func TestNoProject(t *testing.T) {
	ed := editor.NewEditor(newPrefs(t), nil, nil)
	defer ed.Close()

	test.ExpectSuccess(t, curated.Is(ed.OpenMap(1, "Town"), editor.NoProject))
	_, err := ed.Save()
	test.ExpectSuccess(t, curated.Is(err, editor.NoProject))
	test.ExpectSuccess(t, ed.Idle())

	lines := ed.Service()
	test.DemandEquality(t, len(lines), 1)
	test.ExpectSuccess(t, strings.Contains(lines[0], "no project open"))
}

func TestCloseProject(t *testing.T) {
	ed := editor.NewEditor(newPrefs(t), nil, nil)
	defer ed.Close()

	test.DemandSuccess(t, ed.OpenBackend(context.Background(), newProject(), nil))
	test.DemandSuccess(t, ed.OpenMap(1, "Town"))
	test.ExpectEquality(t, ed.Tabs().Len(), 2)

	ed.CloseProject()
	test.ExpectFailure(t, ed.IsOpen())
	test.ExpectEquality(t, strings.Join(ed.Tabs().Names(), ","), "Get Started")
}

func TestOpenFromPreferences(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.MkdirAll(filepath.Join(dir, "Data"), 0o755))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "Data", "Map001.json"), []byte(mapJSON), 0o644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "Data", "Tilesets.json"), []byte(tilesetsJSON), 0o644))

	for _, backend := range []string{"disk", "memory"} {
		prefs := newPrefs(t)
		test.DemandSuccess(t, prefs.Backend.Set(backend))
		test.DemandSuccess(t, prefs.ProjectLocation.Set(dir))

		ed := editor.NewEditor(prefs, nil, nil)
		test.DemandSuccess(t, ed.Open(context.Background()), backend)

		p := panels.NewMapPanel(1, "Town")
		test.DemandSuccess(t, ed.Add(p))
		serviceUntil(t, ed, p.Ready)

		test.ExpectSuccess(t, ed.Close(), backend)
	}
}

func TestNewBackend(t *testing.T) {
	_, _, err := editor.NewBackend(context.Background(), editor.Options{Backend: "ftp"})
	test.ExpectSuccess(t, curated.Is(err, editor.BackendError))

	_, _, err = editor.NewBackend(context.Background(), editor.Options{Backend: "disk", Location: filepath.Join(t.TempDir(), "missing")})
	test.ExpectSuccess(t, curated.Is(err, editor.BackendError))

	// packed files are unpacked transparently
	dir := t.TempDir()
	data, err := packed.Pack(packed.Zstd, []byte(tilesetsJSON))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "Tilesets.json"), data, 0o644))

	b, closer, err := editor.NewBackend(context.Background(), editor.Options{Backend: "disk", Location: dir, Codec: packed.Zstd})
	test.DemandSuccess(t, err)
	defer closer.Close()

	data, err = b.ReadBytes(context.Background(), "Tilesets.json")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(data), tilesetsJSON)
}
