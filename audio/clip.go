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
	"bytes"
	"io"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"

	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
)

// Format of encoded sound data.
type Format int

// List of valid Format values.
const (
	Unknown Format = iota
	WAV
	MP3
)

func (f Format) String() string {
	switch f {
	case WAV:
		return "wav"
	case MP3:
		return "mp3"
	}
	return "unknown"
}

// Detect the format of the encoded data from its header.
func Detect(data []byte) Format {
	if len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE" {
		return WAV
	}
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return MP3
	}

	// an mp3 file without an ID3 tag starts with a frame sync
	if len(data) >= 2 && data[0] == 0xff && data[1]&0xe0 == 0xe0 {
		return MP3
	}

	return Unknown
}

// Clip is decoded sound data. Samples are signed 16bit values, interleaved if
// there is more than one channel.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// Frames returns the number of sample frames in the clip. A frame is one
// sample for every channel.
func (c *Clip) Frames() int {
	if c.Channels == 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

// Duration of the clip when played at normal pitch.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}

// Decode the data. The format is detected automatically.
//
// Returns the DecodeError if the format is not recognised or if the data is
// not valid.
func Decode(data []byte) (*Clip, error) {
	var clip *Clip
	var err error

	switch Detect(data) {
	case WAV:
		clip, err = decodeWAV(data)
	case MP3:
		clip, err = decodeMP3(data)
	default:
		return nil, curated.Errorf(DecodeError, "unrecognised format")
	}

	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}
	if clip.Frames() == 0 || clip.SampleRate <= 0 {
		return nil, curated.Errorf(DecodeError, "no sound data")
	}

	logger.Logf(logger.Allow, "audio", "decoded %d channel clip at %dHz (%v)", clip.Channels, clip.SampleRate, clip.Duration())

	return clip, nil
}

func decodeWAV(data []byte) (*Clip, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, curated.Errorf("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	return &Clip{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		Samples:    samples16(buf),
	}, nil
}

// samples16 converts the samples in the buffer to signed 16bit values
func samples16(buf *goaudio.IntBuffer) []int16 {
	s := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch buf.SourceBitDepth {
		case 8:
			// 8bit wav data is unsigned
			s[i] = int16((v - 128) << 8)
		case 24:
			s[i] = int16(v >> 8)
		case 32:
			s[i] = int16(v >> 16)
		default:
			s[i] = int16(v)
		}
	}
	return s
}

func decodeMP3(data []byte) (*Clip, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	// according to the go-mp3 docs:
	//
	// "The stream is always formatted as 16bit (little endian) 2 channels even if
	// the source is single channel MP3. Thus, a sample always consists of 4
	// bytes.".
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	s := make([]int16, len(pcm)/2)
	for i := range s {
		s[i] = int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
	}

	return &Clip{
		SampleRate: dec.SampleRate(),
		Channels:   2,
		Samples:    s,
	}, nil
}
