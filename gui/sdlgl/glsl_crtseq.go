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

package sdlgl

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/crtterm/gui/compositor"
	"github.com/jetsetilly/crtterm/gui/sdlgl/shaders"
)

// crtEnvironment is the information needed by a crtShader for a single pass.
type crtEnvironment struct {
	// the texture the shader will work with
	srcTextureID uint32

	// the burn-in accumulation. zero if there is no accumulation
	accumTextureID uint32

	width  int32
	height int32

	time float64
	seed float32

	uniforms compositor.Uniforms
}

// crtShader is a shader program that draws one of the effect passes with the
// fullscreen quad.
type crtShader interface {
	destroy()
	positionAttrib() uint32
	setAttributesArgs(env crtEnvironment)
}

func uniform(handle uint32, name string) int32 {
	return gl.GetUniformLocation(handle, gl.Str(name+"\x00"))
}

// crtPassShader is the part of every crtShader that is common to all passes
type crtPassShader struct {
	shader

	screenDim int32
	time      int32
	seed      int32
}

func (sh *crtPassShader) create(fragProgram []byte) {
	sh.createProgram(string(shaders.QuadVertexShader), string(fragProgram))
	sh.screenDim = uniform(sh.handle, "ScreenDim")
	sh.time = uniform(sh.handle, "Time")
	sh.seed = uniform(sh.handle, "Seed")
}

func (sh *crtPassShader) positionAttrib() uint32 {
	return uint32(sh.position)
}

func (sh *crtPassShader) setAttributes(env crtEnvironment) {
	gl.UseProgram(sh.handle)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, env.srcTextureID)
	gl.Uniform1i(sh.texture, 0)
	gl.BindSampler(0, 0)

	gl.Uniform2f(sh.screenDim, float32(env.width), float32(env.height))
	gl.Uniform1f(sh.time, float32(env.time))
	gl.Uniform1f(sh.seed, env.seed)
}

type phosphorShader struct {
	crtPassShader
	previous int32
	decay    int32
}

func newPhosphorShader() *phosphorShader {
	sh := &phosphorShader{}
	sh.create(shaders.PhosphorShader)
	sh.previous = uniform(sh.handle, "Previous")
	sh.decay = uniform(sh.handle, "Decay")
	return sh
}

// the current frame is the source texture of the environment
func (sh *phosphorShader) setAttributesArgs(env crtEnvironment, previous uint32, decay float32) {
	sh.setAttributes(env)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, previous)
	gl.Uniform1i(sh.previous, 1)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1f(sh.decay, decay)
}

type warpShader struct {
	crtPassShader
	curvature int32
}

func newWarpShader() crtShader {
	sh := &warpShader{}
	sh.create(shaders.WarpShader)
	sh.curvature = uniform(sh.handle, "Curvature")
	return sh
}

func (sh *warpShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform1f(sh.curvature, env.uniforms.Curvature)
}

type rasterizationShader struct {
	crtPassShader
	mode int32
	dark int32
}

func newRasterizationShader() crtShader {
	sh := &rasterizationShader{}
	sh.create(shaders.RasterizationShader)
	sh.mode = uniform(sh.handle, "Mode")
	sh.dark = uniform(sh.handle, "Dark")
	return sh
}

func (sh *rasterizationShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform1i(sh.mode, int32(env.uniforms.RasterizationMode))
	gl.Uniform1f(sh.dark, env.uniforms.RasterizationDark)
}

type chromaticShader struct {
	crtPassShader
	shift int32
}

func newChromaticShader() crtShader {
	sh := &chromaticShader{}
	sh.create(shaders.ChromaticShader)
	sh.shift = uniform(sh.handle, "Shift")
	return sh
}

func (sh *chromaticShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform1f(sh.shift, env.uniforms.RGBShift)
}

type bloomShader struct {
	crtPassShader
	accum     int32
	bloom     int32
	radius    int32
	threshold int32
	burnIn    int32
	curvature int32
}

func newBloomShader() crtShader {
	sh := &bloomShader{}
	sh.create(shaders.BloomShader)
	sh.accum = uniform(sh.handle, "Accum")
	sh.bloom = uniform(sh.handle, "Bloom")
	sh.radius = uniform(sh.handle, "Radius")
	sh.threshold = uniform(sh.handle, "Threshold")
	sh.burnIn = uniform(sh.handle, "BurnIn")
	sh.curvature = uniform(sh.handle, "Curvature")
	return sh
}

func (sh *bloomShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)

	burnIn := env.uniforms.BurnIn
	if env.accumTextureID == 0 {
		burnIn = 0
	}

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, env.accumTextureID)
	gl.Uniform1i(sh.accum, 1)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.Uniform1f(sh.bloom, env.uniforms.Bloom)
	gl.Uniform1i(sh.radius, int32(env.uniforms.BloomRadius))
	gl.Uniform1f(sh.threshold, env.uniforms.BloomThreshold)
	gl.Uniform1f(sh.burnIn, burnIn)
	gl.Uniform1f(sh.curvature, env.uniforms.Curvature)
}

type hsyncShader struct {
	crtPassShader
	wave  int32
	noise int32
}

func newHSyncShader() crtShader {
	sh := &hsyncShader{}
	sh.create(shaders.HSyncShader)
	sh.wave = uniform(sh.handle, "Wave")
	sh.noise = uniform(sh.handle, "Noise")
	return sh
}

func (sh *hsyncShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform1f(sh.wave, env.uniforms.HSyncWave)
	gl.Uniform1f(sh.noise, env.uniforms.HSyncNoise)
}

type jitterShader struct {
	crtPassShader
	offset int32
}

func newJitterShader() crtShader {
	sh := &jitterShader{}
	sh.create(shaders.JitterShader)
	sh.offset = uniform(sh.handle, "Offset")
	return sh
}

func (sh *jitterShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform2f(sh.offset, env.uniforms.JitterX, env.uniforms.JitterY)
}

type noiseShader struct {
	crtPassShader
	flicker int32
	static  int32
}

func newNoiseShader() crtShader {
	sh := &noiseShader{}
	sh.create(shaders.NoiseShader)
	sh.flicker = uniform(sh.handle, "Flicker")
	sh.static = uniform(sh.handle, "Static")
	return sh
}

func (sh *noiseShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	gl.Uniform1f(sh.flicker, env.uniforms.Flicker)
	gl.Uniform1f(sh.static, env.uniforms.Static)
}

type glowlineShader struct {
	crtPassShader
	position  int32
	width     int32
	amount    int32
	fontColor int32
}

func newGlowlineShader() crtShader {
	sh := &glowlineShader{}
	sh.create(shaders.GlowlineShader)
	sh.position = uniform(sh.handle, "Position")
	sh.width = uniform(sh.handle, "Width")
	sh.amount = uniform(sh.handle, "Amount")
	sh.fontColor = uniform(sh.handle, "FontColor")
	return sh
}

func (sh *glowlineShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	c := env.uniforms.FontColor
	gl.Uniform1f(sh.position, env.uniforms.GlowPosition)
	gl.Uniform1f(sh.width, env.uniforms.GlowWidth)
	gl.Uniform1f(sh.amount, env.uniforms.Glow)
	gl.Uniform3f(sh.fontColor, c.R, c.G, c.B)
}

type finalShader struct {
	crtPassShader
	backgroundColor int32
	brightness      int32
	gamma           int32
}

func newFinalShader() crtShader {
	sh := &finalShader{}
	sh.create(shaders.FinalShader)
	sh.backgroundColor = uniform(sh.handle, "BackgroundColor")
	sh.brightness = uniform(sh.handle, "Brightness")
	sh.gamma = uniform(sh.handle, "Gamma")
	return sh
}

func (sh *finalShader) setAttributesArgs(env crtEnvironment) {
	sh.setAttributes(env)
	c := env.uniforms.BackgroundColor
	gl.Uniform3f(sh.backgroundColor, c.R, c.G, c.B)
	gl.Uniform1f(sh.brightness, env.uniforms.Brightness)
	gl.Uniform1f(sh.gamma, env.uniforms.Gamma)
}

// newCRTShaders returns a shader for every pass named by the compositor
// package
func newCRTShaders() map[string]crtShader {
	return map[string]crtShader{
		"warp":          newWarpShader(),
		"rasterization": newRasterizationShader(),
		"chromatic":     newChromaticShader(),
		"bloom":         newBloomShader(),
		"hsync":         newHSyncShader(),
		"jitter":        newJitterShader(),
		"noise":         newNoiseShader(),
		"glowline":      newGlowlineShader(),
		"final":         newFinalShader(),
	}
}
