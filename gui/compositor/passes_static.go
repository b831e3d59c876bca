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

package compositor

import (
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
)

type warpPass struct{}

func (warpPass) Name() string {
	return "warp"
}

func (warpPass) Active(env *Environment) bool {
	return env.Config.ScreenCurvature > 0
}

func (warpPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	for y := range dst.Height {
		for x := range dst.Width {
			u, v, ok := env.warp(center(dst, x, y))
			if !ok {
				dst.Set(x, y, framebuffer.RGBA{})
				continue
			}
			dst.Set(x, y, src.Sample(u, v))
		}
	}
	return nil
}

type rasterizationPass struct{}

func (rasterizationPass) Name() string {
	return "rasterization"
}

func (rasterizationPass) Active(env *Environment) bool {
	return env.Config.RasterizationMode != crt.RasterizationNone && env.Config.RasterizationIntensity > 0
}

func (rasterizationPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	dark := env.Uniforms(dst.Width, dst.Height).RasterizationDark

	for y := range dst.Height {
		for x := range dst.Width {
			p := src.At(x, y)

			switch env.Config.RasterizationMode {
			case crt.RasterizationScanline:
				if y%2 == 1 {
					p = p.Scale(dark)
				}
			case crt.RasterizationPixel:
				if x%3 == 2 || y%3 == 2 {
					p = p.Scale(dark)
				}
			case crt.RasterizationSubpixel:
				// each column of pixels is a single phosphor color
				switch x % 3 {
				case 0:
					p.G *= dark
					p.B *= dark
				case 1:
					p.R *= dark
					p.B *= dark
				case 2:
					p.R *= dark
					p.G *= dark
				}
			}

			dst.Set(x, y, p)
		}
	}
	return nil
}

// maximum channel offset in pixels
const maxRGBShift = 3.0

type chromaticPass struct{}

func (chromaticPass) Name() string {
	return "chromatic"
}

func (chromaticPass) Active(env *Environment) bool {
	return env.Config.RGBShift > 0
}

func (chromaticPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	shift := float64(env.Uniforms(dst.Width, dst.Height).RGBShift)

	for y := range dst.Height {
		for x := range dst.Width {
			r := samplePixel(src, float64(x)+shift, float64(y))
			g := src.At(x, y)
			b := samplePixel(src, float64(x)-shift, float64(y))
			dst.Set(x, y, framebuffer.RGBA{
				R: r.R,
				G: g.G,
				B: b.B,
				A: max(r.A, g.A, b.A),
			})
		}
	}
	return nil
}

const (
	bloomRadius    = 3
	bloomThreshold = 0.4
	bloomStrength  = 1.5
)

// the scratch buffer of the bloom pass is used for the horizontal half of the
// blur. it is overwritten completely on every call to Apply()
type bloomPass struct {
	scratch []framebuffer.RGBA
}

func (*bloomPass) Name() string {
	return "bloom"
}

func (*bloomPass) Active(env *Environment) bool {
	return env.Config.Bloom > 0 || (env.Config.BurnIn > 0 && env.Accum != nil)
}

func bright(p framebuffer.RGBA) framebuffer.RGBA {
	l := p.Luma()
	if l <= bloomThreshold {
		return framebuffer.RGBA{}
	}
	return p.Scale((l - bloomThreshold) / (1 - bloomThreshold))
}

func (bp *bloomPass) blur(src *framebuffer.Texture) {
	w := src.Width
	h := src.Height
	if len(bp.scratch) != w*h {
		bp.scratch = make([]framebuffer.RGBA, w*h)
	}

	const n = 2*bloomRadius + 1

	for y := range h {
		for x := range w {
			var s framebuffer.RGBA
			for d := -bloomRadius; d <= bloomRadius; d++ {
				b := bright(src.At(x+d, y))
				s.R += b.R
				s.G += b.G
				s.B += b.B
			}
			bp.scratch[y*w+x] = s.Scale(1.0 / n)
		}
	}
}

func (bp *bloomPass) glow(w, h, x, y int) framebuffer.RGBA {
	const n = 2*bloomRadius + 1

	var s framebuffer.RGBA
	for d := -bloomRadius; d <= bloomRadius; d++ {
		yy := y + d
		if yy < 0 || yy >= h {
			continue
		}
		b := bp.scratch[yy*w+x]
		s.R += b.R
		s.G += b.G
		s.B += b.B
	}
	return s.Scale(1.0 / n)
}

func (bp *bloomPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	u := env.Uniforms(dst.Width, dst.Height)

	bloom := u.Bloom
	if bloom > 0 {
		bp.blur(src)
	}

	burnIn := u.BurnIn
	accum := env.Accum
	if burnIn == 0 || !src.SameSize(accum) {
		accum = nil
	}

	for y := range dst.Height {
		for x := range dst.Width {
			p := src.At(x, y)

			if bloom > 0 {
				g := bp.glow(dst.Width, dst.Height, x, y)
				p.R += g.R * bloom
				p.G += g.G * bloom
				p.B += g.B * bloom
			}

			// the accumulation is in the undistorted space of the rasterized
			// grid so it must be sampled through the warp
			if accum != nil {
				u, v, ok := env.warp(center(dst, x, y))
				if ok {
					a := accum.Sample(u, v)
					p.R = max(p.R, a.R*burnIn)
					p.G = max(p.G, a.G*burnIn)
					p.B = max(p.B, a.B*burnIn)
				}
			}

			p.R = clamp(p.R)
			p.G = clamp(p.G)
			p.B = clamp(p.B)
			dst.Set(x, y, p)
		}
	}
	return nil
}
