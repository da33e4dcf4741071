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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/tilewright/audio"
	"github.com/jetsetilly/tilewright/curated"
	"github.com/jetsetilly/tilewright/test"
	"github.com/jetsetilly/tilewright/wavwriter"
)

func TestWrite(t *testing.T) {
	clip := &audio.Clip{
		SampleRate: 22050,
		Channels:   2,
		Samples:    make([]int16, 400),
	}
	for i := range clip.Samples {
		clip.Samples[i] = int16(i*50 - 10000)
	}

	fn := filepath.Join(t.TempDir(), "out.wav")
	test.DemandSuccess(t, wavwriter.Write(fn, clip))

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, audio.Detect(data), audio.WAV)

	back, err := audio.Decode(data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, back.SampleRate, clip.SampleRate)
	test.ExpectEquality(t, back.Channels, clip.Channels)
	test.ExpectEquality(t, back.Frames(), clip.Frames())
}

func TestWriteUnsupported(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	err := wavwriter.Write(fn, nil)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, wavwriter.WavError))

	err = wavwriter.Write(fn, &audio.Clip{SampleRate: 44100, Channels: 6})
	test.ExpectFailure(t, err)

	_, err = os.Stat(fn)
	test.ExpectSuccess(t, os.IsNotExist(err))
}
