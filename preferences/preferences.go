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

package preferences

import (
	"fmt"
	"strings"
	"time"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/paths"
	"github.com/jetsetilly/tilewright/prefs"
	"github.com/jetsetilly/tilewright/storage/packed"
)

// DefaultFile is the name of the preferences file in the configuration
// directory.
const DefaultFile = "preferences"

// Sentinal error patterns.
const (
	InvalidValue = "preferences: %s: %v"
)

// Backends lists the names of the storage backends that can be selected.
var Backends = []string{"disk", "zip", "remote", "minio", "s3", "memory"}

// default values
const (
	defBackend         = "disk"
	defCodec           = "none"
	defReadConcurrency = 8
	defRemoteRate      = 0.0
	defRemoteBurst     = 4
	defToastLifetime   = 5.0
)

// Preferences defines and collates all the preference values used by the
// editor.
type Preferences struct {
	dsk *prefs.Disk

	// storage backend used to open a project. one of the names in Backends
	Backend prefs.String

	// the location of the project. the meaning depends on the backend: a
	// directory, a zip file, a URL or a bucket name
	ProjectLocation prefs.String

	// compression applied to every file in the project
	Codec prefs.String

	// maximum number of reads in flight at once
	ReadConcurrency prefs.Int

	// requests per second for the remote backend. zero is unlimited
	RemoteRate  prefs.Float
	RemoteBurst prefs.Int

	// volume and pitch used by the sound test when the sound does not say
	Volume prefs.Int
	Pitch  prefs.Int

	// panic if the cache is used from the wrong goroutine
	CheckThread prefs.Bool

	// seconds before a notice disappears
	ToastLifetime prefs.Float
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If the path is empty then DefaultFile in the
// configuration directory is used.
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}

	if pth == "" {
		var err error
		pth, err = paths.ResourcePath(DefaultFile)
		if err != nil {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	p.setHooks()
	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	for _, e := range []struct {
		key string
		val interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{"storage.backend", &p.Backend},
		{"storage.location", &p.ProjectLocation},
		{"storage.codec", &p.Codec},
		{"storage.concurrency", &p.ReadConcurrency},
		{"storage.remote.rate", &p.RemoteRate},
		{"storage.remote.burst", &p.RemoteBurst},
		{"audio.volume", &p.Volume},
		{"audio.pitch", &p.Pitch},
		{"cache.checkthread", &p.CheckThread},
		{"editor.toastlifetime", &p.ToastLifetime},
	} {
		if err := p.dsk.Add(e.key, e.val); err != nil {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

func (p *Preferences) setHooks() {
	p.Backend.SetHookPre(func(v prefs.Value) error {
		s := strings.ToLower(fmt.Sprintf("%v", v))
		for _, b := range Backends {
			if b == s {
				return nil
			}
		}
		return curated.Errorf(InvalidValue, "backend", v)
	})

	p.Codec.SetHookPre(func(v prefs.Value) error {
		if _, ok := packed.ParseCodec(fmt.Sprintf("%v", v)); !ok {
			return curated.Errorf(InvalidValue, "codec", v)
		}
		return nil
	})

	p.ReadConcurrency.SetHookPre(func(v prefs.Value) error {
		if n, ok := v.(int); ok && (n < 1 || n > 64) {
			return curated.Errorf(InvalidValue, "concurrency", v)
		}
		return nil
	})

	p.RemoteRate.SetHookPre(func(v prefs.Value) error {
		if f, ok := v.(float64); ok && f < 0 {
			return curated.Errorf(InvalidValue, "remote rate", v)
		}
		return nil
	})

	p.Volume.SetHookPre(func(v prefs.Value) error {
		if n, ok := v.(int); ok && (n < audio.MinVolume || n > audio.MaxVolume) {
			return curated.Errorf(InvalidValue, "volume", v)
		}
		return nil
	})

	p.Pitch.SetHookPre(func(v prefs.Value) error {
		if n, ok := v.(int); ok && (n < audio.MinPitch || n > audio.MaxPitch) {
			return curated.Errorf(InvalidValue, "pitch", v)
		}
		return nil
	})
}

// SetDefaults reverts all preferences to their default value.
func (p *Preferences) SetDefaults() error {
	for _, err := range []error{
		p.Backend.Set(defBackend),
		p.ProjectLocation.Set(""),
		p.Codec.Set(defCodec),
		p.ReadConcurrency.Set(defReadConcurrency),
		p.RemoteRate.Set(defRemoteRate),
		p.RemoteBurst.Set(defRemoteBurst),
		p.Volume.Set(audio.DefaultVolume),
		p.Pitch.Set(audio.DefaultPitch),
		p.CheckThread.Set(false),
		p.ToastLifetime.Set(defToastLifetime),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// BackendName returns the backend in lower case.
func (p *Preferences) BackendName() string {
	return strings.ToLower(p.Backend.Get().(string))
}

// CodecValue returns the Codec preference as a packed.Codec.
func (p *Preferences) CodecValue() packed.Codec {
	c, _ := packed.ParseCodec(p.Codec.Get().(string))
	return c
}

// Lifetime returns the ToastLifetime preference as a duration.
func (p *Preferences) Lifetime() time.Duration {
	return time.Duration(p.ToastLifetime.Get().(float64) * float64(time.Second))
}
