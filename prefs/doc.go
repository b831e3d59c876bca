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

// Package prefs facilitates the storage of preferences to disk. Values are
// registered with a Disk instance under a key and the Disk instance handles
// the loading and saving of the value.
//
//	var bloom prefs.Float
//	dsk, _ := prefs.NewDisk(pth)
//	_ = dsk.Add("crt.bloom", &bloom)
//	_ = dsk.Load(true)
//
// More than one Disk instance may share the same file. Saving one Disk does
// not disturb the keys of another.
//
// The file format is a boiler plate warning on the first line followed by
// one "key :: value" entry per line, sorted by key.
//
// A group of preferences can be overridden for a single session with the
// command line stack. See PushCommandLineStack() for the format.
package prefs
