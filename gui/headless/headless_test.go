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

package headless_test

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/headless"
	"github.com/jetsetilly/crtterm/test"
)

func TestScheduler(t *testing.T) {
	sch := headless.NewScheduler()

	var order []int
	var times []float64
	sch.RequestFrame(func(now float64) { order = append(order, 0); times = append(times, now) })
	cancel := sch.RequestFrame(func(now float64) { order = append(order, 1) })
	sch.RequestFrame(func(now float64) { order = append(order, 2) })
	test.ExpectEquality(t, sch.Pending(), 3)

	cancel()
	test.ExpectEquality(t, sch.Step(0.5), 2)
	test.ExpectEquality(t, len(order), 2)
	test.ExpectEquality(t, order[0], 0)
	test.ExpectEquality(t, order[1], 2)
	test.ExpectEquality(t, times[0], 0.5)
	test.ExpectEquality(t, sch.Pending(), 0)
}

func TestSchedulerRun(t *testing.T) {
	sch := headless.NewScheduler()

	var times []float64
	var loop func(float64)
	loop = func(now float64) {
		times = append(times, now)
		if len(times) < 3 {
			sch.RequestFrame(loop)
		}
	}
	sch.RequestFrame(loop)

	// requests made during a step are run on the next step
	test.ExpectEquality(t, sch.Run(10, 0.25), 3)
	test.DemandEquality(t, len(times), 3)
	test.ExpectEquality(t, times[2], 0.5)
}

func TestPNG(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	tex, err := dev.NewTexture(8, 4)
	test.DemandSuccess(t, err)
	tex.Fill(framebuffer.Opaque(1, 0, 0))

	p := headless.NewPNG(0, 0)
	err = p.Save(filepath.Join(t.TempDir(), "none.png"))
	test.ExpectSuccess(t, curated.Is(err, headless.NoFrame))

	test.DemandSuccess(t, p.Present(tex))
	test.ExpectEquality(t, p.Frames(), 1)
	test.ExpectEquality(t, p.Image().Bounds().Dx(), 8)

	fn := filepath.Join(t.TempDir(), "frame.png")
	test.DemandSuccess(t, p.Save(fn))

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, img.Bounds().Dx(), 8)
	test.ExpectEquality(t, color.NRGBAModel.Convert(img.At(3, 2)).(color.NRGBA), color.NRGBA{R: 255, A: 255})
}

func TestPNGScaled(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	tex, err := dev.NewTexture(8, 4)
	test.DemandSuccess(t, err)
	tex.Fill(framebuffer.Opaque(0, 0, 1))

	p := headless.NewPNG(16, 8)
	test.DemandSuccess(t, p.Present(tex))
	test.ExpectEquality(t, p.Image().Bounds().Dx(), 16)
	test.ExpectEquality(t, p.Image().Bounds().Dy(), 8)

	// a flat image remains flat after scaling
	c := p.Image().NRGBAAt(7, 3)
	test.ExpectEquality(t, c.R, uint8(0))
	test.ExpectApproximate(t, int(c.B), 255, 0.01)
}

func TestHost(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	tex, err := dev.NewTexture(2, 2)
	test.DemandSuccess(t, err)

	p := headless.NewPNG(0, 0)
	h := headless.NewHost(p)

	var posted bool
	h.Post(func() { posted = true })
	test.ExpectSuccess(t, posted)

	h.RequestFrame(func(_ float64) {
		test.ExpectSuccess(t, h.Present(tex))
	})
	test.ExpectEquality(t, h.Run(5, 0.1), 1)
	test.ExpectEquality(t, p.Frames(), 1)
}
