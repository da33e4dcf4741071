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

// Package modalflag handles command line arguments for programs that run in
// one of several modes. It is a wrapper for the flag package in the standard
// library.
//
// Each mode has its own set of flags. A mode is selected by the first
// argument that is not a flag. If the first argument is not a recognised mode
// then the default mode is selected and the argument is left for the mode to
// consume. For example, with the modes RUN, LIST and PLAY, where RUN is the
// default:
//
//	tilewright -log myproject
//	tilewright LIST -backend zip myproject.zip
//	tilewright play myproject BGM/Town
//
// Mode names are not case sensitive.
//
// The idiomatic usage is:
//
//	md := modalflag.NewModes(os.Stdout, os.Args[1:])
//	md.AddSubModes("RUN", "LIST", "PLAY")
//	switch r, err := md.Parse(); r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		maps := md.AddIntList("maps", "maps to open")
//		...
//	}
//
// Every call to NewMode() begins a new set of flags. Arguments are consumed
// from where the previous Parse() stopped.
package modalflag
