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

	"github.com/jetsetilly/crtterm/gui/framebuffer"
)

const (
	// proportion of the screen width
	maxHSyncWave  = 0.03
	maxHSyncNoise = 0.005

	// pixels
	maxJitter = 2.0

	maxFlicker = 0.25
	maxStatic  = 0.3

	// seconds for the glow line to travel the height of the screen
	glowPeriod = 5.0

	// proportion of the screen height
	glowWidth = 0.06
	maxGlow   = 0.3
)

type hsyncPass struct{}

func (hsyncPass) Name() string {
	return "hsync"
}

func (hsyncPass) Active(env *Environment) bool {
	return env.Config.HorizontalSync > 0
}

func (hsyncPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	t := env.Time
	u := env.Uniforms(dst.Width, dst.Height)

	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		wave := math.Sin(2 * math.Pi * (v*4 - t*2))
		n := 2*float64(env.Random.Noise(t, 0, y)) - 1
		disp := float64(u.HSyncWave)*wave + float64(u.HSyncNoise)*n

		for x := range dst.Width {
			dst.Set(x, y, samplePixel(src, float64(x)+disp, float64(y)))
		}
	}
	return nil
}

type jitterPass struct{}

func (jitterPass) Name() string {
	return "jitter"
}

func (jitterPass) Active(env *Environment) bool {
	return env.Config.Jitter > 0
}

func (jitterPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	u := env.Uniforms(dst.Width, dst.Height)
	dx := float64(u.JitterX)
	dy := float64(u.JitterY)

	for y := range dst.Height {
		for x := range dst.Width {
			dst.Set(x, y, samplePixel(src, float64(x)+dx, float64(y)+dy))
		}
	}
	return nil
}

type noisePass struct{}

func (noisePass) Name() string {
	return "noise"
}

func (noisePass) Active(env *Environment) bool {
	return env.Config.Flickering > 0 || env.Config.StaticNoise > 0
}

func (noisePass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	t := env.Time
	u := env.Uniforms(dst.Width, dst.Height)
	flicker := u.Flicker
	static := u.Static

	for y := range dst.Height {
		for x := range dst.Width {
			p := src.At(x, y)

			// noise only appears on the screen surface
			if p.A > 0 {
				p = p.Scale(flicker)
				if static > 0 {
					n := (env.Random.Noise(t, x, y) - 0.5) * static
					p.R = clamp(p.R + n)
					p.G = clamp(p.G + n)
					p.B = clamp(p.B + n)
				}
			}

			dst.Set(x, y, p)
		}
	}
	return nil
}

type glowlinePass struct{}

func (glowlinePass) Name() string {
	return "glowline"
}

func (glowlinePass) Active(env *Environment) bool {
	return env.Config.GlowingLine > 0
}

// glowlinePosition returns the vertical position of the center of the glow
// line in normalised coordinates. the line starts and ends off screen
func glowlinePosition(t float64) float64 {
	return fract(t/glowPeriod)*(1+2*glowWidth) - glowWidth
}

func (glowlinePass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	u := env.Uniforms(dst.Width, dst.Height)
	pos := float64(u.GlowPosition)
	amount := u.Glow
	col := u.FontColor

	for y := range dst.Height {
		v := (float64(y) + 0.5) / float64(dst.Height)
		d := math.Abs(v-pos) / glowWidth

		if d >= 1 {
			copy(dst.Pix[y*dst.Width:(y+1)*dst.Width], src.Pix[y*src.Width:(y+1)*src.Width])
			continue
		}

		g := amount * float32((1-d)*(1-d))
		for x := range dst.Width {
			p := src.At(x, y)
			if p.A > 0 {
				p.R = clamp(p.R + col.R*g)
				p.G = clamp(p.G + col.G*g)
				p.B = clamp(p.B + col.B*g)
			}
			dst.Set(x, y, p)
		}
	}
	return nil
}

// the final pass is always active because it is responsible for blending the
// background color into transparent regions of the image
type finalPass struct{}

func (finalPass) Name() string {
	return "final"
}

func (finalPass) Active(env *Environment) bool {
	return true
}

func (finalPass) Apply(dst *framebuffer.Texture, src *framebuffer.Texture, env *Environment) error {
	u := env.Uniforms(dst.Width, dst.Height)
	bg := u.BackgroundColor
	brightness := u.Brightness
	gamma := float64(u.Gamma)

	for i, p := range src.Pix {
		if brightness == 0 && p.A >= 1 {
			dst.Pix[i] = p
			continue
		}

		if brightness > 0 {
			p.R = float32(math.Pow(float64(clamp(p.R)), gamma))
			p.G = float32(math.Pow(float64(clamp(p.G)), gamma))
			p.B = float32(math.Pow(float64(clamp(p.B)), gamma))
		}

		if p.A < 1 {
			a := clamp(p.A)
			p = framebuffer.RGBA{
				R: p.R*a + bg.R*(1-a),
				G: p.G*a + bg.G*(1-a),
				B: p.B*a + bg.B*(1-a),
				A: 1,
			}
		}

		dst.Pix[i] = p
	}
	return nil
}
