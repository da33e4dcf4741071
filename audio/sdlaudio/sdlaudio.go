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

package sdlaudio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"

	"github.com/veandco/go-sdl2/sdl"
)

// the number of sample frames queued at a time. like the SDL buffer length, a
// long chunk introduces lag when volume or pitch is changed and a short chunk
// means the feeder goroutine has to wake up more often. the value has been
// arrived at through trial and error
const chunkFrames = 2048

// bytes per sample. the SDL device is opened for signed 16bit samples
const sampleSize = 2

// Device implements the audio.Device interface.
type Device struct {
	crit    sync.Mutex
	streams map[*Stream]bool
}

// Open is an audio.Opener for SDL devices. The SDL audio subsystem is
// initialised if necessary.
func Open() (audio.Device, error) {
	if sdl.WasInit(sdl.INIT_AUDIO) == 0 {
		if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
			return nil, curated.Errorf("sdlaudio: %v", err)
		}
	}
	logger.Logf(logger.Allow, "sdlaudio", "using %s driver", sdl.GetCurrentAudioDriver())
	return &Device{
		streams: make(map[*Stream]bool),
	}, nil
}

// NewStream implements the audio.Device interface.
func (dev *Device) NewStream(clip *audio.Clip, loop bool) (audio.Stream, error) {
	if clip.Channels < 1 || clip.Channels > 2 {
		return nil, curated.Errorf("sdlaudio: unsupported number of channels (%d)", clip.Channels)
	}

	spec := &sdl.AudioSpec{
		Freq:     int32(clip.SampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: uint8(clip.Channels),
		Samples:  uint16(chunkFrames / 2),
	}

	var actualSpec sdl.AudioSpec

	id, err := sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}

	s := &Stream{
		dev:  dev,
		id:   id,
		clip: clip,
		loop: loop,
		quit: make(chan bool),
		done: make(chan bool),
	}
	s.volume.Store(audio.DefaultVolume)
	s.pitch.Store(audio.DefaultPitch)

	dev.crit.Lock()
	dev.streams[s] = true
	dev.crit.Unlock()

	return s, nil
}

// Close implements the audio.Device interface. Any streams that have not been
// released are released.
func (dev *Device) Close() error {
	dev.crit.Lock()
	streams := make([]*Stream, 0, len(dev.streams))
	for s := range dev.streams {
		streams = append(streams, s)
	}
	dev.crit.Unlock()

	for _, s := range streams {
		s.Release()
	}

	return nil
}

// Stream implements the audio.Stream interface.
type Stream struct {
	dev  *Device
	id   sdl.AudioDeviceID
	clip *audio.Clip
	loop bool

	volume atomic.Int32
	pitch  atomic.Int32

	playing  atomic.Bool
	started  bool
	released sync.Once

	quit chan bool
	done chan bool
}

// Start implements the audio.Stream interface.
func (s *Stream) Start() {
	if s.started {
		return
	}
	s.started = true
	s.playing.Store(true)

	sdl.PauseAudioDevice(s.id, false)

	go s.feed()
}

// feed the SDL device with chunks of the clip until the end of the clip is
// reached or the stream is released
func (s *Stream) feed() {
	defer close(s.done)

	chunkBytes := uint32(chunkFrames * s.clip.Channels * sampleSize)
	buf := make([]byte, chunkBytes)

	dur := time.Duration(chunkFrames) * time.Second / time.Duration(s.clip.SampleRate) / 2
	tck := time.NewTicker(dur)
	defer tck.Stop()

	var pos float64
	var ended bool

	for {
		if !ended && sdl.GetQueuedAudioSize(s.id) < chunkBytes*2 {
			var n int
			pos, n, ended = resample(s.clip, pos, float64(s.pitch.Load())/100, int(s.volume.Load()), s.loop, buf)
			if n > 0 {
				if err := sdl.QueueAudio(s.id, buf[:n]); err != nil {
					logger.Log(logger.Allow, "sdlaudio", err)
					ended = true
				}
			}
		}

		if ended && sdl.GetQueuedAudioSize(s.id) == 0 {
			s.playing.Store(false)
			return
		}

		select {
		case <-s.quit:
			return
		case <-tck.C:
		}
	}
}

// Release implements the audio.Stream interface.
func (s *Stream) Release() {
	s.released.Do(func() {
		s.playing.Store(false)
		close(s.quit)
		if s.started {
			<-s.done
		}
		sdl.ClearQueuedAudio(s.id)
		sdl.CloseAudioDevice(s.id)

		s.dev.crit.Lock()
		delete(s.dev.streams, s)
		s.dev.crit.Unlock()
	})
}

// SetVolume implements the audio.Stream interface.
func (s *Stream) SetVolume(volume int) {
	s.volume.Store(int32(volume))
}

// SetPitch implements the audio.Stream interface.
func (s *Stream) SetPitch(pitch int) {
	s.pitch.Store(int32(pitch))
}

// Playing implements the audio.Stream interface.
func (s *Stream) Playing() bool {
	return s.playing.Load()
}
