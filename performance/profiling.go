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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/jetsetilly/crtterm/curated"
)

// Sentinal error patterns.
const (
	ProfileError  = "performance: profile: %v"
	UnknownOption = "performance: unknown profile option (%s)"
)

// Profile specifies which profiles to create.
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
)

// ParseProfile converts a string to a Profile value. Options are separated by
// commas. Valid options are NONE, CPU and MEM. Case is ignored.
func ParseProfile(s string) (Profile, error) {
	p := ProfileNone

	for _, o := range strings.Split(s, ",") {
		switch strings.ToUpper(strings.TrimSpace(o)) {
		case "", "NONE":
		case "CPU":
			p |= ProfileCPU
		case "MEM":
			p |= ProfileMem
		default:
			return ProfileNone, curated.Errorf(UnknownOption, o)
		}
	}

	return p, nil
}

// RunProfiler runs the supplied function with the profiles specified. The
// profile files are named with the filenameHeader, followed by ".cpu.profile"
// or ".mem.profile".
func RunProfiler(profile Profile, filenameHeader string, run func() error) (rerr error) {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(filenameHeader + ".cpu.profile")
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = curated.Errorf(ProfileError, err)
			}
		}()

		if err := pprof.StartCPUProfile(f); err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(filenameHeader + ".mem.profile")
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return curated.Errorf(ProfileError, err)
		}
	}

	return nil
}
