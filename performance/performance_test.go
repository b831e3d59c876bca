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

package performance_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/performance"
	"github.com/jetsetilly/crtterm/test"
)

type stepper struct {
	steps int
	limit int
}

func (s *stepper) Step(_ float64) int {
	if s.limit > 0 && s.steps >= s.limit {
		return 0
	}
	s.steps++
	return 1
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	p, err = performance.ParseProfile("cpu, MEM")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)

	_, err = performance.ParseProfile("trace")
	test.ExpectSuccess(t, curated.Is(err, performance.UnknownOption))
}

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(120, 1.0)
	test.ExpectEquality(t, fps, 120.0)
	test.ExpectEquality(t, accuracy, 200.0)

	fps, _ = performance.CalcFPS(10, 0)
	test.ExpectEquality(t, fps, 0.0)
}

func TestCheck(t *testing.T) {
	performance.Leadtime = 0

	var b strings.Builder
	s := &stepper{}
	err := performance.Check(&b, performance.ProfileNone, s, "20ms")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.HasSuffix(b.String(), "%\n"), b.String())
	test.ExpectSuccess(t, s.steps > 0)

	err = performance.Check(&b, performance.ProfileNone, s, "not a duration")
	test.ExpectSuccess(t, curated.Is(err, performance.CheckError))
}

func TestCheckStopped(t *testing.T) {
	performance.Leadtime = 0

	var b strings.Builder
	err := performance.Check(&b, performance.ProfileNone, &stepper{limit: 3}, "10s")
	test.ExpectSuccess(t, curated.Is(err, performance.CheckError))
	test.ExpectEquality(t, b.Len(), 0)
}

func TestRunProfiler(t *testing.T) {
	hdr := filepath.Join(t.TempDir(), "test")

	var ran bool
	err := performance.RunProfiler(performance.ProfileCPU|performance.ProfileMem, hdr, func() error {
		ran = true
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(hdr + ".cpu.profile")
	test.ExpectSuccess(t, err)
	_, err = os.Stat(hdr + ".mem.profile")
	test.ExpectSuccess(t, err)
}
