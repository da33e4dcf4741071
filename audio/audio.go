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

package audio

import (
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/jetsetilly/tilewright/sink"
)

// Sentinal error patterns.
const (
	DecodeError      = "audio: decode: %v"
	BackendInitError = "audio: backend: %v"
	PlaybackError    = "audio: %v: %v"
)

// Limits and defaults for volume and pitch. Volume is a percentage of full
// volume. Pitch is a percentage of the normal playback rate.
const (
	MinVolume     = 0
	MaxVolume     = 100
	DefaultVolume = 100
	MinPitch      = 50
	MaxPitch      = 150
	DefaultPitch  = 100
)

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Stream is a single sound being played by a Device.
type Stream interface {
	sink.Releaser

	// Start playback. Streams are created stopped
	Start()

	SetVolume(volume int)
	SetPitch(pitch int)

	// Playing returns false once the stream has been released or, for streams
	// that do not loop, when the end of the sound has been reached
	Playing() bool
}

// Device is the audio backend.
type Device interface {
	NewStream(clip *Clip, loop bool) (Stream, error)
	Close() error
}

// Opener opens the Device. It is called when the first sound is played.
type Opener func() (Device, error)

// Audio is the playback sink for sound.
type Audio struct {
	open       Opener
	device     Device
	interacted bool

	slots [NumSources]sink.Slot[Stream]
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(open Opener) *Audio {
	return &Audio{
		open: open,
	}
}

// Interacted should be called when the user first interacts with the
// application. Sound cannot be played until it has been called.
func (aud *Audio) Interacted() {
	aud.interacted = true
}

// IsInteracted returns true if Interacted() has been called.
func (aud *Audio) IsInteracted() bool {
	return aud.interacted
}

// backend returns the device, opening it if necessary
func (aud *Audio) backend() (Device, error) {
	if aud.device != nil {
		return aud.device, nil
	}
	if !aud.interacted {
		return nil, curated.Errorf(BackendInitError, "waiting for user interaction")
	}
	if aud.open == nil {
		return nil, curated.Errorf(BackendInitError, "no audio device")
	}

	dev, err := aud.open()
	if err != nil {
		logger.Log(logger.Allow, "audio", err)
		return nil, curated.Errorf(BackendInitError, err)
	}
	aud.device = dev

	return aud.device, nil
}

// Play the encoded sound on the source. Any sound already playing on the
// source is stopped.
func (aud *Audio) Play(src Source, data []byte, volume int, pitch int) error {
	clip, err := Decode(data)
	if err != nil {
		return err
	}
	return aud.PlayClip(src, clip, volume, pitch)
}

// PlayClip is like Play() but with a Clip that has already been decoded.
func (aud *Audio) PlayClip(src Source, clip *Clip, volume int, pitch int) error {
	if src < 0 || src >= NumSources {
		return curated.Errorf(PlaybackError, src, "invalid source")
	}

	dev, err := aud.backend()
	if err != nil {
		return err
	}

	stream, err := dev.NewStream(clip, src.Loops())
	if err != nil {
		return curated.Errorf(PlaybackError, src, err)
	}
	stream.SetVolume(clamp(volume, MinVolume, MaxVolume))
	stream.SetPitch(clamp(pitch, MinPitch, MaxPitch))

	// the previous stream is released before the new stream starts
	aud.slots[src].Install(stream)
	stream.Start()

	return nil
}

func (aud *Audio) live(src Source) (Stream, bool) {
	if src < 0 || src >= NumSources {
		return nil, false
	}
	return aud.slots[src].Live()
}

// SetVolume of the sound playing on the source. Does nothing if there is no
// sound.
func (aud *Audio) SetVolume(src Source, volume int) {
	if s, ok := aud.live(src); ok {
		s.SetVolume(clamp(volume, MinVolume, MaxVolume))
	}
}

// SetPitch of the sound playing on the source. Does nothing if there is no
// sound.
func (aud *Audio) SetPitch(src Source, pitch int) {
	if s, ok := aud.live(src); ok {
		s.SetPitch(clamp(pitch, MinPitch, MaxPitch))
	}
}

// Stop the sound playing on the source. It is safe to call Stop() for a source
// that is not playing anything.
func (aud *Audio) Stop(src Source) {
	if src < 0 || src >= NumSources {
		return
	}
	aud.slots[src].Release()
}

// StopAll stops the sound on every source.
func (aud *Audio) StopAll() {
	for _, src := range Sources {
		aud.Stop(src)
	}
}

// Playing returns true if a sound is playing on the source.
func (aud *Audio) Playing(src Source) bool {
	s, ok := aud.live(src)
	return ok && s.Playing()
}

// Close stops all sound and closes the device.
func (aud *Audio) Close() error {
	aud.StopAll()
	if aud.device == nil {
		return nil
	}
	err := aud.device.Close()
	aud.device = nil
	return err
}
