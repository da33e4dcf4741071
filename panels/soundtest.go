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
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/project"
	"github.com/jetsetilly/tilewright/storage"
)

// SoundTest lists the sounds for an audio source and plays them on request.
type SoundTest struct {
	src  audio.Source
	list listing

	// the sound waiting to be played. it is played on the first frame that
	// it is ready
	request string

	// the sound most recently played
	playing string

	closed bool
}

// NewSoundTest is the preferred method of initialisation for the SoundTest
// type.
func NewSoundTest(src audio.Source) *SoundTest {
	return &SoundTest{
		src: src,
	}
}

// Name implements the Panel interface.
func (p *SoundTest) Name() string {
	return fmt.Sprintf("Sound Test: %s", p.src)
}

// RequiresFilesystem implements the Panel interface.
func (p *SoundTest) RequiresFilesystem() bool {
	return true
}

// ForceClose implements the Panel interface.
func (p *SoundTest) ForceClose() bool {
	return p.closed
}

// Close the panel at the end of the next frame.
func (p *SoundTest) Close() {
	p.closed = true
}

// Play the named sound. The sound is loaded if necessary and played as soon
// as it is ready.
func (p *SoundTest) Play(name string) {
	p.request = name
}

// Requested returns the name of the sound waiting to be played.
func (p *SoundTest) Requested() string {
	return p.request
}

// Stop the sound.
func (p *SoundTest) Stop(f *Frame) {
	p.request = ""
	p.playing = ""
	if f.Audio != nil {
		f.Audio.Stop(p.src)
	}
}

// Show implements the Panel interface.
func (p *SoundTest) Show(f *Frame) error {
	if f.FS == nil {
		p.closed = true
		return nil
	}

	if p.list.dir == "" {
		p.list.dir = f.Manifest.AudioPath(p.src.String())
	}

	names, done, err := p.list.poll(f.FS)
	if err != nil && !curated.Is(err, storage.NotFound) {
		return err
	}

	p.play(f)

	switch {
	case !done:
		f.Printf("%s: listing", p.Name())
	case p.request != "":
		f.Printf("%s: %d sounds, loading %s", p.Name(), len(names), p.request)
	case p.playing != "" && f.Audio != nil && f.Audio.Playing(p.src):
		f.Printf("%s: %d sounds, playing %s", p.Name(), len(names), p.playing)
	default:
		f.Printf("%s: %d sounds", p.Name(), len(names))
	}

	return nil
}

func (p *SoundTest) play(f *Frame) {
	if p.request == "" {
		return
	}

	r := f.Cache.GetOrLoad(project.SoundKey(p.src, p.request))
	switch r.State {
	case cache.Ready:
	case cache.Failed:
		f.Errorf("Cannot load `%s` sound: %v", p.request, r.Err)
		p.request = ""
		return
	default:
		return
	}

	name := p.request
	p.request = ""

	clip, ok := cache.As[*audio.Clip](r)
	if !ok {
		f.Errorf("Cannot play `%s` sound: not a sound", name)
		return
	}

	if f.Audio == nil {
		return
	}

	if err := f.Audio.PlayClip(p.src, clip, f.Volume, f.Pitch); err != nil {
		f.Errorf("Cannot play `%s` sound: %v", name, err)
		return
	}
	p.playing = name
}
