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

// Package wavwriter writes a decoded audio clip to disk as a 16bit PCM WAV
// file. The whole clip is held in memory so it is suitable for exporting
// individual sound effects rather than long recordings.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/logger"
	"github.com/youpy/go-wav"
)

// WavError is the pattern for every error returned by the package.
const WavError = "wavwriter: %v"

// Write encodes clip to filename, replacing any existing file. Clips with
// more than two channels can not be written.
func Write(filename string, clip *audio.Clip) (rerr error) {
	if clip == nil || clip.Channels < 1 || clip.Channels > 2 || clip.SampleRate <= 0 {
		return curated.Errorf(WavError, "unsupported clip format")
	}

	buffer := make([]wav.Sample, clip.Frames())
	for i := range buffer {
		for c := 0; c < clip.Channels; c++ {
			buffer[i].Values[c] = int(clip.Samples[i*clip.Channels+c])
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(WavError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavError, err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(buffer)), uint16(clip.Channels), uint32(clip.SampleRate), 16)
	if enc == nil {
		return curated.Errorf(WavError, "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d frames to %s", len(buffer), filename)

	err = enc.WriteSamples(buffer)
	if err != nil {
		return curated.Errorf(WavError, err)
	}

	return nil
}
