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

// Uniforms are the values used by the passes that are constant for the whole
// of a single frame. Distances are in pixels for an image of the size given to
// Environment.Uniforms().
//
// Values that vary from pixel to pixel, such as static noise, are not
// included.
type Uniforms struct {
	Curvature float32

	RasterizationMode crt.RasterizationMode

	// the multiplier for the darkened part of the rasterization pattern
	RasterizationDark float32

	RGBShift float32

	Bloom          float32
	BloomRadius    int
	BloomThreshold float32
	BurnIn         float32

	// amplitude of the sine wave and of the noise of the horizontal sync
	// displacement
	HSyncWave  float32
	HSyncNoise float32

	JitterX float32
	JitterY float32

	// brightness multiplier
	Flicker float32
	Static  float32

	// normalised vertical position and height of the glow line
	GlowPosition float32
	GlowWidth    float32
	Glow         float32

	FontColor       framebuffer.RGBA
	BackgroundColor framebuffer.RGBA

	Brightness float32
	Gamma      float32
}

func opaqueColor(cfg crt.EffectConfig, font bool) framebuffer.RGBA {
	c := cfg.BackgroundColor
	if font {
		c = cfg.FontColor
	}
	return framebuffer.Opaque(float32(c.R), float32(c.G), float32(c.B))
}

// Uniforms returns the per-frame values of the passes for an image of the
// width and height. The random values depend on the frame time and the seed
// of the random number generator.
func (env *Environment) Uniforms(width, height int) Uniforms {
	cfg := env.Config
	t := env.Time

	u := Uniforms{
		Curvature:         float32(cfg.ScreenCurvature),
		RasterizationMode: cfg.RasterizationMode,
		RasterizationDark: float32(1 - cfg.RasterizationIntensity),
		RGBShift:          float32(cfg.RGBShift * maxRGBShift),
		Bloom:             float32(cfg.Bloom * bloomStrength),
		BloomRadius:       bloomRadius,
		BloomThreshold:    bloomThreshold,
		BurnIn:            float32(cfg.BurnIn),
		Flicker:           1,
		Static:            float32(cfg.StaticNoise * maxStatic),
		GlowPosition:      float32(glowlinePosition(t)),
		GlowWidth:         glowWidth,
		Glow:              float32(cfg.GlowingLine * maxGlow),
		FontColor:         opaqueColor(cfg, true),
		BackgroundColor:   opaqueColor(cfg, false),
		Brightness:        float32(cfg.Brightness),
		Gamma:             float32(1 / (1 + cfg.Brightness)),
	}

	if cfg.HorizontalSync > 0 {
		// strength of sync loss varies from frame to frame
		w := float64(width) * cfg.HorizontalSync
		strength := float64(env.Random.Noise(t, -1, -1))
		u.HSyncWave = float32(w * maxHSyncWave * strength)
		u.HSyncNoise = float32(w * maxHSyncNoise)
	}

	if cfg.Jitter > 0 {
		amount := cfg.Jitter * maxJitter
		u.JitterX = float32((2*float64(env.Random.Noise(t, 1, 0)) - 1) * amount)
		u.JitterY = float32((2*float64(env.Random.Noise(t, 0, 1)) - 1) * amount)
	}

	if cfg.Flickering > 0 {
		u.Flicker = 1 - float32(cfg.Flickering*maxFlicker)*env.Random.Noise(t, -2, -2)
	}

	return u
}

// ActivePasses returns the names of the passes that would be applied for the
// configuration, in the order they would be applied. The accum argument says
// whether a burn-in accumulation is available.
func ActivePasses(cfg crt.EffectConfig, accum bool) []string {
	env := &Environment{Config: cfg}
	if accum {
		env.Accum = &framebuffer.Texture{}
	}

	var n []string
	for _, p := range newPasses() {
		if p.Active(env) {
			n = append(n, p.Name())
		}
	}
	return n
}

// PassNames returns the names of every pass in the order they are applied.
func PassNames() []string {
	var n []string
	for _, p := range newPasses() {
		n = append(n, p.Name())
	}
	return n
}
