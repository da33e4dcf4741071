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

package editor

import (
	"context"
	"io"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/cache"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/graphics"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/notifications"
	"github.com/jetsetilly/tilewright/panels"
	"github.com/jetsetilly/tilewright/preferences"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/storage"
)

// Sentinal error patterns.
const (
	NoProject   = "editor: no project open"
	SaveError   = "editor: save: %v"
	ManifestErr = "editor: manifest: %v"
)

// Editor is the editor session.
type Editor struct {
	prefs *preferences.Preferences

	audio    *audio.Audio
	graphics *graphics.Graphics
	toasts   *notifications.Toasts
	tabs     *panels.Tabs

	// the open project. backend is nil if no project is open
	ctx      context.Context
	cancel   context.CancelFunc
	backend  storage.Backend
	closer   io.Closer
	fs       *storage.Async
	cache    *cache.Cache
	manifest project.Manifest

	frame uint64
}

// NewEditor is the preferred method of initialisation for the Editor type. The
// openers are called the first time a sound is played or an image is shown.
// Either opener can be nil.
func NewEditor(prefs *preferences.Preferences, openAudio audio.Opener, openGraphics graphics.FactoryOpener) *Editor {
	return &Editor{
		prefs:    prefs,
		audio:    audio.NewAudio(openAudio),
		graphics: graphics.NewGraphics(openGraphics),
		toasts:   notifications.NewToasts(prefs.Lifetime()),
		tabs:     panels.NewTabs(panels.NewStarted()),
		manifest: project.DefaultManifest(),
	}
}

// Open the project described by the preferences.
func (ed *Editor) Open(ctx context.Context) error {
	opts := Options{
		Backend:     ed.prefs.BackendName(),
		Location:    ed.prefs.ProjectLocation.Get().(string),
		Codec:       ed.prefs.CodecValue(),
		RemoteRate:  ed.prefs.RemoteRate.Get().(float64),
		RemoteBurst: ed.prefs.RemoteBurst.Get().(int),
	}

	backend, closer, err := NewBackend(ctx, opts)
	if err != nil {
		ed.toasts.Error("Cannot open project: %v", err)
		return err
	}

	if err := ed.OpenBackend(ctx, backend, closer); err != nil {
		closer.Close()
		return err
	}

	return nil
}

// OpenBackend opens the project stored in the backend. Any project already
// open is closed first. The closer is closed when the project is closed and
// can be nil.
//
// The project manifest is read before the function returns. A project
// without a manifest uses project.DefaultManifest().
func (ed *Editor) OpenBackend(ctx context.Context, backend storage.Backend, closer io.Closer) error {
	ed.CloseProject()

	man := project.DefaultManifest()
	data, err := backend.ReadBytes(ctx, project.ManifestFile)
	switch {
	case err == nil:
		man, err = project.DecodeManifest(data)
		if err != nil {
			ed.toasts.Error("Cannot open project: %v", err)
			return curated.Errorf(ManifestErr, err)
		}
	case curated.Is(err, storage.NotFound):
		logger.Logf(logger.Allow, "editor", "no %s. using default layout", project.ManifestFile)
	default:
		ed.toasts.Error("Cannot open project: %v", err)
		return curated.Errorf(ManifestErr, err)
	}

	ed.ctx, ed.cancel = context.WithCancel(ctx)
	ed.backend = backend
	ed.closer = closer
	ed.manifest = man
	ed.fs = storage.NewAsync(ed.ctx, backend, int64(ed.prefs.ReadConcurrency.Get().(int)))
	ed.cache = cache.NewCache(ed.fs, ed.prefs.CheckThread.Get().(bool))
	project.Register(ed.cache, man)

	ed.toasts.Info("Opened %s", man.Title)

	return nil
}

// CloseProject closes the open project and every panel that needs it. Unsaved
// changes are lost. It is safe to call if no project is open.
func (ed *Editor) CloseProject() {
	if ed.backend == nil {
		return
	}

	ed.tabs.Clean(func(p panels.Panel) bool {
		return p.RequiresFilesystem()
	})
	ed.audio.StopAll()
	ed.graphics.Close()

	ed.cache.Close()
	ed.cancel()
	if ed.closer != nil {
		if err := ed.closer.Close(); err != nil {
			logger.Log(logger.Allow, "editor", err)
		}
	}

	logger.Logf(logger.Allow, "editor", "closed %s", ed.manifest.Title)

	ed.backend = nil
	ed.closer = nil
	ed.fs = nil
	ed.cache = nil
	ed.manifest = project.DefaultManifest()
}

// IsOpen returns true if a project is open.
func (ed *Editor) IsOpen() bool {
	return ed.backend != nil
}

// Manifest returns the manifest of the open project.
func (ed *Editor) Manifest() project.Manifest {
	return ed.manifest
}

// Cache returns the cache of the open project. Returns nil if no project is
// open.
func (ed *Editor) Cache() *cache.Cache {
	return ed.cache
}

// Tabs returns the open panels.
func (ed *Editor) Tabs() *panels.Tabs {
	return ed.tabs
}

// Toasts returns the notices for the user.
func (ed *Editor) Toasts() *notifications.Toasts {
	return ed.toasts
}

// Audio returns the audio sink.
func (ed *Editor) Audio() *audio.Audio {
	return ed.audio
}

// Graphics returns the graphics sink.
func (ed *Editor) Graphics() *graphics.Graphics {
	return ed.graphics
}

// Interacted should be called on the first user interaction. Sound can not be
// played until then.
func (ed *Editor) Interacted() {
	ed.audio.Interacted()
}

// OpenMap adds a panel for the map, or focuses the panel if it is already
// open.
func (ed *Editor) OpenMap(id int, name string) error {
	if !ed.IsOpen() {
		return curated.Errorf(NoProject)
	}
	ed.tabs.Add(panels.NewMapPanel(id, name))
	return nil
}

// Add a panel.
func (ed *Editor) Add(p panels.Panel) error {
	if p.RequiresFilesystem() && !ed.IsOpen() {
		return curated.Errorf(NoProject)
	}
	ed.tabs.Add(p)
	return nil
}

// Service the editor for one frame. Completed reads are applied to the cache
// and then every panel is shown. Returns the output of the panels.
func (ed *Editor) Service() []string {
	ed.frame++

	f := &panels.Frame{
		Number:   ed.frame,
		Manifest: ed.manifest,
		Audio:    ed.audio,
		Graphics: ed.graphics,
		Notify:   ed.toasts,
		Volume:   ed.prefs.Volume.Get().(int),
		Pitch:    ed.prefs.Pitch.Get().(int),
	}

	if ed.IsOpen() {
		ed.cache.Poll()
		f.Cache = ed.cache
		f.FS = ed.fs
	}

	// errors have already been raised as notices
	_ = ed.tabs.Show(f)

	return f.Lines()
}

// Idle returns true if no reads are in flight.
func (ed *Editor) Idle() bool {
	if !ed.IsOpen() {
		return true
	}
	return ed.cache.Stats().InFlight == 0
}

// Save every modified map. Returns the number of maps written.
func (ed *Editor) Save() (int, error) {
	if !ed.IsOpen() {
		return 0, curated.Errorf(NoProject)
	}

	dirty := ed.cache.Dirty(project.Maps)
	for _, id := range dirty {
		var data []byte
		err := cache.ViewAs(ed.cache, project.MapKey(id), func(m *project.Map) error {
			var err error
			data, err = project.EncodeMap(m)
			return err
		})
		if err != nil {
			ed.toasts.Error("Cannot save map %d: %v", id, err)
			return 0, curated.Errorf(SaveError, err)
		}

		if err := ed.backend.WriteBytes(ed.ctx, ed.manifest.MapPath(id), data); err != nil {
			ed.toasts.Error("Cannot save map %d: %v", id, err)
			return 0, curated.Errorf(SaveError, err)
		}
	}

	ed.cache.ClearDirty(project.Maps)
	if len(dirty) > 0 {
		ed.toasts.Info("Saved %d maps", len(dirty))
	}

	return len(dirty), nil
}

// Reload discards every cached resource. Resources are read again the next
// time they are requested. Unsaved changes are lost.
func (ed *Editor) Reload() {
	if !ed.IsOpen() {
		return
	}
	ed.cache.InvalidateAll()
	ed.cache.ClearDirty(project.Maps)
}

// Close the editor, closing the project and releasing the sinks.
func (ed *Editor) Close() error {
	ed.CloseProject()
	ed.graphics.Close()
	return ed.audio.Close()
}
