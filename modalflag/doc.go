// This file is part of crtterm.
//
// crtterm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// crtterm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with crtterm.  If not, see <https://www.gnu.org/licenses/>.

// Package modalflag wraps the flag package from the standard library and adds
// program modes. A mode is a command line argument that selects a different
// way of running the program, each mode with its own set of flags.
//
// Flags for the top level are added after a call to NewArgs(). The list of
// possible modes, if any, is given with AddSubModes(). The first mode in the
// list is the default mode:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "SNAPSHOT")
//	logEcho := md.AddBool("log", false, "echo log to stdout")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// Following a successful call to Parse(), Mode() returns the selected mode.
// The flags for that mode are then added after a call to NewMode() and the
// remaining arguments are parsed with another call to Parse():
//
//	switch md.Mode() {
//	case "SNAPSHOT":
//		md.NewMode()
//		frames := md.AddInt("frames", 60, "number of frames to render")
//		p, err := md.Parse()
//		...
//	}
//
// Mode names are not case sensitive. Mode() always returns the upper case
// form.
package modalflag
