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

package audio_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/test"
)

// makeWAV encodes the samples as a 16bit wav file
func makeWAV(t *testing.T, sampleRate int, channels int, samples []int) []byte {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           samples,
		SourceBitDepth: 16,
	})
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, enc.Close())
	test.DemandSuccess(t, f.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	return data
}

func TestDetect(t *testing.T) {
	test.ExpectEquality(t, audio.Detect([]byte("RIFF\x00\x00\x00\x00WAVEfmt ")), audio.WAV)
	test.ExpectEquality(t, audio.Detect([]byte("ID3\x04")), audio.MP3)
	test.ExpectEquality(t, audio.Detect([]byte{0xff, 0xfb, 0x90, 0x00}), audio.MP3)
	test.ExpectEquality(t, audio.Detect([]byte("OggS")), audio.Unknown)
	test.ExpectEquality(t, audio.Detect(nil), audio.Unknown)
}

func TestDecodeWAV(t *testing.T) {
	samples := make([]int, 2000)
	for i := range samples {
		samples[i] = (i % 100) * 100
	}
	data := makeWAV(t, 22050, 2, samples)

	clip, err := audio.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, clip.SampleRate, 22050)
	test.ExpectEquality(t, clip.Channels, 2)
	test.ExpectEquality(t, clip.Frames(), 1000)
	test.ExpectEquality(t, clip.Samples[3], int16(300))
	test.ExpectApproximate(t, clip.Duration().Seconds(), 1000.0/22050.0, 0.001)
}

func TestDecodeErrors(t *testing.T) {
	_, err := audio.Decode([]byte("not audio"))
	test.ExpectSuccess(t, curated.Is(err, audio.DecodeError))

	// an ID3 header followed by garbage
	_, err = audio.Decode([]byte("ID3\x04\x00\x00\x00\x00\x00\x00garbage"))
	test.ExpectSuccess(t, curated.Is(err, audio.DecodeError))

	// a truncated wav file
	_, err = audio.Decode([]byte("RIFF\x00\x00\x00\x00WAVE"))
	test.ExpectSuccess(t, curated.Is(err, audio.DecodeError))
}

// fakeStream records the calls made to it in the device log
type fakeStream struct {
	dev     *fakeDevice
	name    string
	loop    bool
	volume  int
	pitch   int
	started bool
	stopped bool
}

func (s *fakeStream) Start() {
	s.started = true
	s.dev.log = append(s.dev.log, fmt.Sprintf("start %s", s.name))
}

func (s *fakeStream) Release() {
	s.stopped = true
	s.dev.log = append(s.dev.log, fmt.Sprintf("release %s", s.name))
}

func (s *fakeStream) SetVolume(v int) { s.volume = v }
func (s *fakeStream) SetPitch(p int)  { s.pitch = p }
func (s *fakeStream) Playing() bool   { return s.started && !s.stopped }

type fakeDevice struct {
	log     []string
	streams []*fakeStream
	closed  bool
}

func (d *fakeDevice) NewStream(clip *audio.Clip, loop bool) (audio.Stream, error) {
	s := &fakeStream{
		dev:  d,
		name: fmt.Sprintf("%d", len(d.streams)),
		loop: loop,
	}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

func newAudio() (*audio.Audio, *fakeDevice, *int) {
	dev := &fakeDevice{}
	opened := new(int)
	aud := audio.NewAudio(func() (audio.Device, error) {
		*opened++
		return dev, nil
	})
	return aud, dev, opened
}

var clip = &audio.Clip{
	SampleRate: 22050,
	Channels:   1,
	Samples:    make([]int16, 100),
}

func TestPlaybackHandOff(t *testing.T) {
	aud, dev, _ := newAudio()
	aud.Interacted()

	trackA := makeWAV(t, 22050, 1, make([]int, 100))
	trackB := makeWAV(t, 44100, 1, make([]int, 100))

	test.DemandSuccess(t, aud.Play(audio.BGM, trackA, 80, 100))
	test.ExpectSuccess(t, aud.Playing(audio.BGM))

	test.DemandSuccess(t, aud.Play(audio.BGM, trackB, 80, 100))
	test.DemandEquality(t, len(dev.streams), 2)

	// track A is stopped and only track B plays
	a, b := dev.streams[0], dev.streams[1]
	test.ExpectFailure(t, a.Playing())
	test.ExpectSuccess(t, b.Playing())
	test.ExpectSuccess(t, aud.Playing(audio.BGM))

	// the previous stream is released before the new stream starts
	test.ExpectEquality(t, fmt.Sprintf("%v", dev.log), "[start 0 release 0 start 1]")

	test.ExpectSuccess(t, a.loop)
	test.ExpectEquality(t, b.volume, 80)
	test.ExpectEquality(t, b.pitch, 100)
}

func TestSourcesAreIndependent(t *testing.T) {
	aud, dev, _ := newAudio()
	aud.Interacted()

	test.DemandSuccess(t, aud.PlayClip(audio.BGM, clip, 100, 100))
	test.DemandSuccess(t, aud.PlayClip(audio.SE, clip, 100, 100))
	test.ExpectSuccess(t, aud.Playing(audio.BGM))
	test.ExpectSuccess(t, aud.Playing(audio.SE))
	test.ExpectFailure(t, aud.Playing(audio.BGS))

	// sound effects do not loop
	test.DemandEquality(t, len(dev.streams), 2)
	test.ExpectFailure(t, dev.streams[1].loop)

	aud.Stop(audio.SE)
	test.ExpectSuccess(t, aud.Playing(audio.BGM))
	test.ExpectFailure(t, aud.Playing(audio.SE))

	// stopping is idempotent
	aud.Stop(audio.SE)
	aud.Stop(audio.ME)
	test.ExpectEquality(t, len(dev.log), 3)
}

func TestVolumeAndPitch(t *testing.T) {
	aud, dev, _ := newAudio()
	aud.Interacted()

	// changing an empty source does nothing
	aud.SetVolume(audio.BGS, 50)
	aud.SetPitch(audio.BGS, 120)

	test.DemandSuccess(t, aud.PlayClip(audio.BGS, clip, 200, 10))
	s := dev.streams[0]
	test.ExpectEquality(t, s.volume, audio.MaxVolume)
	test.ExpectEquality(t, s.pitch, audio.MinPitch)

	aud.SetVolume(audio.BGS, 50)
	aud.SetPitch(audio.BGS, 120)
	test.ExpectEquality(t, s.volume, 50)
	test.ExpectEquality(t, s.pitch, 120)
}

func TestLazyDevice(t *testing.T) {
	aud, dev, opened := newAudio()

	// the device is not opened until there has been user interaction
	err := aud.PlayClip(audio.SE, clip, 100, 100)
	test.ExpectSuccess(t, curated.Is(err, audio.BackendInitError))
	test.ExpectEquality(t, *opened, 0)
	test.ExpectFailure(t, aud.IsInteracted())

	aud.Interacted()
	test.ExpectSuccess(t, aud.PlayClip(audio.SE, clip, 100, 100))
	test.ExpectSuccess(t, aud.PlayClip(audio.SE, clip, 100, 100))
	test.ExpectEquality(t, *opened, 1)

	test.ExpectSuccess(t, aud.Close())
	test.ExpectSuccess(t, dev.closed)
	test.ExpectFailure(t, aud.Playing(audio.SE))
}

func TestDeviceFailure(t *testing.T) {
	aud := audio.NewAudio(func() (audio.Device, error) {
		return nil, fmt.Errorf("no sound card")
	})
	aud.Interacted()

	err := aud.PlayClip(audio.BGM, clip, 100, 100)
	test.ExpectSuccess(t, curated.Is(err, audio.BackendInitError))
	test.ExpectFailure(t, aud.Playing(audio.BGM))

	// decode errors take precedence over the state of the device
	err = aud.Play(audio.BGM, []byte("not audio"), 100, 100)
	test.ExpectSuccess(t, curated.Is(err, audio.DecodeError))
}

func TestSources(t *testing.T) {
	for _, s := range audio.Sources {
		p, ok := audio.ParseSource(s.String())
		test.ExpectSuccess(t, ok)
		test.ExpectEquality(t, p, s)
	}
	p, ok := audio.ParseSource("bgs")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, audio.BGS)
	_, ok = audio.ParseSource("music")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, audio.SE.Directory(), "Audio/SE")
	test.ExpectSuccess(t, audio.BGS.Loops())
	test.ExpectFailure(t, audio.ME.Loops())

}
