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

// Package audio plays sound through a small number of fixed sources. Each
// source has a single playback slot and starting playback on a source stops
// whatever was previously playing on it.
//
// Sound data is decoded into a Clip before it is played. WAV and MP3 files
// are supported. Clips can be decoded ahead of time, for example by the
// resource cache, and played many times with PlayClip().
//
// The audio device is not opened until the first sound is played. Moreover,
// the device is only opened after Interacted() has been called. Some
// platforms refuse to play sound before the user has interacted with the
// application and Interacted() is the signal that this has happened.
package audio
