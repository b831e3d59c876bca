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

package compositor_test

import (
	"slices"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/burnin"
	"github.com/jetsetilly/crtterm/gui/compositor"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/rasterizer"
	"github.com/jetsetilly/crtterm/random"
	"github.com/jetsetilly/crtterm/test"
)

func newCompositor(dev *framebuffer.Device) *compositor.Compositor {
	rnd := random.NewRandom()
	rnd.ZeroSeed = true
	return compositor.NewCompositor(dev, rnd)
}

func newRasterizer(t *testing.T, dev *framebuffer.Device, cols, rows int) *rasterizer.Rasterizer {
	t.Helper()
	face, err := fonts.LoadFace(fonts.FaceBasic, 0, 1)
	test.DemandSuccess(t, err)
	atlas, err := fonts.NewAtlas(dev, face)
	test.DemandSuccess(t, err)
	rz := rasterizer.NewRasterizer(dev, atlas, crt.Flat())
	test.DemandSuccess(t, rz.UpdateGridSize(cols, rows))
	return rz
}

// a texture with a different opaque color in every pixel
func pattern(t *testing.T, dev *framebuffer.Device, w, h int) *framebuffer.Texture {
	t.Helper()
	tex, err := dev.NewTexture(w, h)
	test.DemandSuccess(t, err)
	for y := range h {
		for x := range w {
			tex.Set(x, y, framebuffer.Opaque(float32(x)/float32(w), float32(y)/float32(h), float32((x*y)%7)/7))
		}
	}
	return tex
}

func TestPassOrder(t *testing.T) {
	cmp := newCompositor(framebuffer.NewDevice(0))
	defer cmp.Dispose()

	test.ExpectSuccess(t, slices.Equal(cmp.Passes(), []string{
		"warp", "rasterization", "chromatic", "bloom", "hsync",
		"jitter", "noise", "glowline", "final",
	}))
	test.ExpectSuccess(t, slices.Equal(compositor.PassNames(), cmp.Passes()))
}

func TestNotReady(t *testing.T) {
	cmp := newCompositor(framebuffer.NewDevice(0))
	defer cmp.Dispose()

	tex, err := cmp.Render(nil, nil, crt.Default(), 0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, tex == nil)
	test.ExpectSuccess(t, cmp.Texture() == nil)
}

func TestFlatIdempotence(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src := pattern(t, dev, 31, 17)
	defer src.Destroy()

	for _, tm := range []float64{0, 1.5, 1000} {
		out, err := cmp.Render(src, nil, crt.Flat(), tm)
		test.DemandSuccess(t, err)
		test.DemandSuccess(t, slices.Equal(out.Pix, src.Pix))
	}

	// only the final pass has been applied
	test.ExpectSuccess(t, slices.Equal(cmp.Applied(), []string{"final"}))
}

func TestZeroIntensityIsSkipped(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src := pattern(t, dev, 16, 16)
	defer src.Destroy()

	cfg := crt.Default()
	_, err := cmp.Render(src, nil, cfg, 0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Contains(cmp.Applied(), "jitter"))
	test.ExpectSuccess(t, slices.Contains(cmp.Applied(), "rasterization"))

	cfg.Jitter = 0
	cfg.RasterizationIntensity = 0
	_, err = cmp.Render(src, nil, cfg, 0)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, slices.Contains(cmp.Applied(), "jitter"))
	test.ExpectFailure(t, slices.Contains(cmp.Applied(), "rasterization"))

	// passes are applied in order
	applied := cmp.Applied()
	passes := cmp.Passes()
	var i int
	for _, a := range applied {
		for i < len(passes) && passes[i] != a {
			i++
		}
		test.ExpectSuccess(t, i < len(passes), a)
	}
}

func TestDeterminism(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	a := newCompositor(dev)
	b := newCompositor(dev)
	defer a.Dispose()
	defer b.Dispose()

	src := pattern(t, dev, 40, 30)
	defer src.Destroy()

	cfg := crt.Default()
	cfg.RGBShift = 0.5

	outA, err := a.Render(src, src, cfg, 2.25)
	test.DemandSuccess(t, err)
	first := slices.Clone(outA.Pix)

	outA, err = a.Render(src, src, cfg, 2.25)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(outA.Pix, first))

	outB, err := b.Render(src, src, cfg, 2.25)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(outB.Pix, first))

	// time varying effects change with time
	outB, err = b.Render(src, src, cfg, 2.5)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, slices.Equal(outB.Pix, first))
}

func TestBlankGrid(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	rz := newRasterizer(t, dev, 80, 24)
	defer rz.Dispose()
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	cfg := crt.Flat()
	cfg.BackgroundColor.R = 0.25
	rz.SetConfig(cfg)

	tex, err := rz.RenderStaticPass()
	test.DemandSuccess(t, err)
	out, err := cmp.Render(tex, nil, cfg, 0)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, out.Width, 80*7)
	test.ExpectEquality(t, out.Height, 24*13)
	for _, p := range out.Pix {
		test.DemandEquality(t, p, framebuffer.Opaque(0.25, 0, 0))
	}
}

func TestSingleGlyph(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	rz := newRasterizer(t, dev, 80, 24)
	defer rz.Dispose()
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	rz.UpdateCell(0, 0, grid.Cell{Char: 'A', Fg: grid.RGB(255, 255, 255), Bg: grid.RGB(0, 0, 0)})
	tex, err := rz.RenderStaticPass()
	test.DemandSuccess(t, err)

	out, err := cmp.Render(tex, nil, crt.Flat(), 0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(out.Pix, tex.Pix))

	// something was drawn in the first cell and nothing outside of it
	var lit int
	for y := range out.Height {
		for x := range out.Width {
			if out.At(x, y).R > 0 {
				test.DemandSuccess(t, x < 7 && y < 13)
				lit++
			}
		}
	}
	test.ExpectSuccess(t, lit > 0)
}

func TestBurnInTrail(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	rz := newRasterizer(t, dev, 10, 4)
	defer rz.Dispose()
	acc := burnin.NewAccumulator(dev)
	defer acc.Dispose()
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	cfg := crt.Flat()
	cfg.BurnIn = 0.9

	frame := func() *framebuffer.Texture {
		t.Helper()
		tex, err := rz.RenderStaticPass()
		test.DemandSuccess(t, err)
		accum, err := acc.Update(tex, cfg.BurnIn)
		test.DemandSuccess(t, err)
		out, err := cmp.Render(tex, accum, cfg, 0)
		test.DemandSuccess(t, err)
		return out
	}

	// a solid block in the first cell
	rz.UpdateCell(0, 0, grid.Cell{Bg: grid.RGB(255, 255, 255)})
	out := frame()
	test.DemandEquality(t, out.At(3, 3), framebuffer.Opaque(1, 1, 1))

	// the block is removed but remains visible in the next frame
	rz.UpdateCell(0, 0, grid.Blank)
	out = frame()
	d := burnin.Decay(cfg.BurnIn)
	test.ExpectApproximate(t, out.At(3, 3).R, d*float32(cfg.BurnIn), 0.001)
	test.ExpectEquality(t, out.At(20, 20), framebuffer.Opaque(0, 0, 0))

	// without burn-in the block is gone immediately
	cfg.BurnIn = 0
	out = frame()
	test.ExpectEquality(t, out.At(3, 3), framebuffer.Opaque(0, 0, 0))
}

func TestCurvature(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src := pattern(t, dev, 9, 9)
	defer src.Destroy()

	cfg := crt.Flat()
	cfg.ScreenCurvature = 1
	cfg.BackgroundColor.B = 1

	out, err := cmp.Render(src, nil, cfg, 0)
	test.DemandSuccess(t, err)

	// corners are outside of the curved screen and show the background
	test.ExpectEquality(t, out.At(0, 0), framebuffer.Opaque(0, 0, 1))
	test.ExpectEquality(t, out.At(8, 8), framebuffer.Opaque(0, 0, 1))

	// the center is not distorted
	test.ExpectEquality(t, out.At(4, 4), src.At(4, 4))
}

func TestScanlines(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src, err := dev.NewTexture(4, 4)
	test.DemandSuccess(t, err)
	defer src.Destroy()
	src.Fill(framebuffer.Opaque(1, 1, 1))

	cfg := crt.Flat()
	cfg.RasterizationMode = crt.RasterizationScanline
	cfg.RasterizationIntensity = 1

	out, err := cmp.Render(src, nil, cfg, 0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.At(1, 0), framebuffer.Opaque(1, 1, 1))
	test.ExpectEquality(t, out.At(1, 1), framebuffer.Opaque(0, 0, 0))
	test.ExpectEquality(t, out.At(1, 2), framebuffer.Opaque(1, 1, 1))
	test.ExpectEquality(t, out.At(1, 3), framebuffer.Opaque(0, 0, 0))
}

func TestContextLost(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src := pattern(t, dev, 8, 8)
	defer src.Destroy()

	_, err := cmp.Render(src, nil, crt.Default(), 0)
	test.DemandSuccess(t, err)

	dev.Lose()
	out, err := cmp.Render(src, nil, crt.Default(), 0)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ContextLost))
	test.ExpectSuccess(t, out == nil)
}

func TestDispose(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)

	src := pattern(t, dev, 8, 8)
	_, err := cmp.Render(src, nil, crt.Default(), 0)
	test.DemandSuccess(t, err)
	src.Destroy()

	cmp.Dispose()
	cmp.Dispose()
	test.ExpectEquality(t, dev.Live(), 0)

	out, err := cmp.Render(src, nil, crt.Default(), 0)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, out == nil)
}

func TestActivePasses(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	cmp := newCompositor(dev)
	defer cmp.Dispose()

	src := pattern(t, dev, 16, 16)
	defer src.Destroy()
	accum := pattern(t, dev, 16, 16)
	defer accum.Destroy()

	cfg := crt.Default()
	cfg.Jitter = 0

	// the list of active passes agrees with the passes applied by Render()
	_, err := cmp.Render(src, nil, cfg, 0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(compositor.ActivePasses(cfg, false), cmp.Applied()))

	_, err = cmp.Render(src, accum, cfg, 0)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, slices.Equal(compositor.ActivePasses(cfg, true), cmp.Applied()))

	// burn-in alone activates the bloom pass only if there is an accumulation
	cfg = crt.Flat()
	cfg.BurnIn = 0.5
	test.ExpectSuccess(t, slices.Equal(compositor.ActivePasses(cfg, false), []string{"final"}))
	test.ExpectSuccess(t, slices.Equal(compositor.ActivePasses(cfg, true), []string{"bloom", "final"}))
}

func TestUniforms(t *testing.T) {
	rnd := random.NewRandom()
	rnd.ZeroSeed = true

	env := &compositor.Environment{Config: crt.Flat(), Random: rnd}
	u := env.Uniforms(100, 50)
	test.ExpectEquality(t, u.Flicker, float32(1))
	test.ExpectEquality(t, u.JitterX, float32(0))
	test.ExpectEquality(t, u.HSyncWave, float32(0))
	test.ExpectEquality(t, u.Gamma, float32(1))
	test.ExpectEquality(t, u.RasterizationDark, float32(1))

	// the glow line starts above the top of the screen
	test.ExpectSuccess(t, u.GlowPosition < 0)

	env.Config = crt.Default()
	env.Time = 2.5
	a := env.Uniforms(100, 50)
	b := env.Uniforms(100, 50)
	test.ExpectEquality(t, a, b)
	test.ExpectSuccess(t, a.Flicker <= 1 && a.Flicker >= 1-0.25)
	test.ExpectSuccess(t, a.JitterX >= -2 && a.JitterX <= 2)
	test.ExpectEquality(t, a.FontColor.A, float32(1))

	// the horizontal sync displacement is in proportion to the width
	test.ExpectApproximate(t, float64(env.Uniforms(200, 50).HSyncNoise), 2*float64(a.HSyncNoise), 1e-4)
}
