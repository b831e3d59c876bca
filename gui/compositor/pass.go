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
	"math"

	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/random"
)

// Environment is the read-only state shared by all passes for the duration
// of a single Render().
type Environment struct {
	Config crt.EffectConfig

	// render time in seconds
	Time float64

	// burn-in accumulation. may be nil
	Accum *framebuffer.Texture

	Random *random.Random
}

// Pass is a single stage of the CRT effect chain. Passes hold no state between
// calls to Apply() that would affect the output.
type Pass interface {
	Name() string

	// Active returns false if the pass would make no change to the image
	Active(env *Environment) bool

	// Apply draws src to dst with the effect applied. Textures are always
	// the same size
	Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error
}

// warp maps screen coordinates u/v to the coordinates in the undistorted
// image. The boolean result is false if the coordinates fall outside of the
// curved screen.
func (env *Environment) warp(u, v float64) (float64, float64, bool) {
	k := env.Config.ScreenCurvature
	if k == 0 {
		return u, v, true
	}

	cx := u - 0.5
	cy := v - 0.5
	dist := (cx*cx + cy*cy) * k
	u += cx * (1 + dist) * dist
	v += cy * (1 + dist) * dist

	return u, v, u >= 0 && u <= 1 && v >= 0 && v <= 1
}

// samplePixel samples the texture at pixel coordinates. whole numbers are the
// center of a pixel
func samplePixel(tex *framebuffer.Texture, x, y float64) framebuffer.RGBA {
	return tex.Sample((x+0.5)/float64(tex.Width), (y+0.5)/float64(tex.Height))
}

// center of pixel x/y in normalised coordinates
func center(tex *framebuffer.Texture, x, y int) (float64, float64) {
	return (float64(x) + 0.5) / float64(tex.Width), (float64(y) + 0.5) / float64(tex.Height)
}

func clamp(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}
