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
	"github.com/jetsetilly/tilewright/audio"
)

// resample fills buf with little endian 16bit samples taken from the clip,
// starting at frame pos and advancing by step frames for every output frame.
// samples are scaled by the volume, which is a percentage.
//
// returns the new position, the number of bytes written to buf and whether
// the end of the clip has been reached. the end is never reached if loop is
// true.
func resample(clip *audio.Clip, pos float64, step float64, volume int, loop bool, buf []byte) (float64, int, bool) {
	frames := clip.Frames()
	if frames == 0 {
		return pos, 0, true
	}

	ch := clip.Channels
	n := 0

	for n+ch*sampleSize <= len(buf) {
		if int(pos) >= frames {
			if !loop {
				return pos, n, true
			}
			pos -= float64(frames)
		}

		f := int(pos) * ch
		for c := 0; c < ch; c++ {
			v := int32(clip.Samples[f+c]) * int32(volume) / 100
			buf[n] = byte(v)
			buf[n+1] = byte(v >> 8)
			n += sampleSize
		}

		pos += step
	}

	return pos, n, false
}
