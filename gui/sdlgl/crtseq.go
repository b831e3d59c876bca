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
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/burnin"
	"github.com/jetsetilly/crtterm/gui/compositor"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	glfb "github.com/jetsetilly/crtterm/gui/sdlgl/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/jetsetilly/crtterm/random"
)

const crtLogTag = "sdlgl: crt"

// MissingShader is returned by Render() if a pass named by the compositor
// package has no shader program.
const MissingShader = "sdlgl: no shader for the %s pass"

const (
	// the rasterized grid as uploaded by Update() or Render()
	crtSeqColor = iota

	// two accumulations of consecutive frames producing the burn-in effect.
	// the most recent accumulation is blended with the new frame into the
	// other texture
	crtSeqPhosphorA
	crtSeqPhosphorB

	// the two textures used for chaining passes together
	crtSeqPing
	crtSeqPong

	numCrtSeq
)

// Effects applies the CRT effects on the GPU. It implements the Accumulator
// and Compositor interfaces of the driver package, with the same passes in
// the same order as the compositor package.
//
// The processed frame never leaves the GPU. The textures returned by Update()
// and Render() are the textures passed to them and only tell the frame driver
// that there is a frame to present. Once Effects() has been called,
// SDL.Present() draws the processed frame instead of uploading the texture.
//
// All functions must be called from the goroutine that owns the GL context.
type Effects struct {
	seq      *glfb.Sequence
	quad     quad
	phosphor *phosphorShader
	passes   map[string]crtShader
	rnd      *random.Random

	// index of the phosphor texture holding the most recent accumulation
	phosphorIdx int
	primed      bool
	accumulated *framebuffer.Texture

	// the grid has been uploaded by Update() and does not need uploading
	// again by Render()
	fresh bool

	// the most recent output of Render(). zero if there is no output
	output uint32

	destroyed bool
}

func newEffects() *Effects {
	fx := &Effects{
		seq:         glfb.NewSequence(numCrtSeq, crtLogTag),
		quad:        newQuad(),
		phosphor:    newPhosphorShader(),
		passes:      newCRTShaders(),
		rnd:         random.NewRandom(),
		phosphorIdx: crtSeqPhosphorA,
	}
	return fx
}

// Reset discards the accumulated history. The next call to Update() will set
// the accumulation to the current frame.
func (fx *Effects) Reset() {
	fx.primed = false
}

func (fx *Effects) destroy() {
	if fx.destroyed {
		return
	}
	fx.destroyed = true
	fx.output = 0
	fx.seq.Destroy()
	fx.quad.destroy()
	fx.phosphor.destroy()
	for _, sh := range fx.passes {
		sh.destroy()
	}
}

// upload the rasterized grid to the GPU, reallocating the textures if the
// grid has changed size
func (fx *Effects) upload(tex *framebuffer.Texture) error {
	changed, err := fx.seq.Setup(int32(tex.Width), int32(tex.Height))
	if err != nil {
		fx.primed = false
		fx.output = 0
		return err
	}
	if changed {
		if fx.primed {
			logger.Log(logger.Allow, crtLogTag, "accumulation reset by resize")
		}
		fx.primed = false
		fx.output = 0
	}
	return fx.seq.Upload(crtSeqColor, tex.Pix)
}

func (fx *Effects) environment(src uint32) crtEnvironment {
	w, h := fx.seq.Size()
	return crtEnvironment{
		srcTextureID: src,
		width:        w,
		height:       h,
	}
}

// Update implements the driver.Accumulator interface.
func (fx *Effects) Update(current *framebuffer.Texture, burnIn float64) (*framebuffer.Texture, error) {
	if fx.destroyed {
		return nil, nil
	}
	if current == nil {
		if !fx.primed {
			return nil, nil
		}
		return fx.accumulated, nil
	}

	st := storeGLState()
	defer st.restoreGLState()

	if err := fx.upload(current); err != nil {
		return nil, err
	}
	fx.fresh = true

	decay := burnin.Decay(burnIn)
	if !fx.primed {
		decay = 0
	}

	prev := fx.phosphorIdx
	next := crtSeqPhosphorA
	if prev == crtSeqPhosphorA {
		next = crtSeqPhosphorB
	}

	prepareCRTState()
	_, err := fx.seq.Process(next, func() {
		fx.phosphor.setAttributesArgs(fx.environment(fx.seq.Texture(crtSeqColor)), fx.seq.Texture(prev), decay)
		fx.quad.draw(fx.phosphor.positionAttrib())
	})
	if err != nil {
		return nil, err
	}

	fx.phosphorIdx = next
	fx.primed = true
	fx.accumulated = current

	return current, nil
}

// Render implements the driver.Compositor interface.
func (fx *Effects) Render(color *framebuffer.Texture, accum *framebuffer.Texture, cfg crt.EffectConfig, time float64) (*framebuffer.Texture, error) {
	if fx.destroyed || color == nil {
		return nil, nil
	}

	st := storeGLState()
	defer st.restoreGLState()

	if !fx.fresh {
		if err := fx.upload(color); err != nil {
			return nil, err
		}
	}
	fx.fresh = false

	w, h := fx.seq.Size()
	env := &compositor.Environment{
		Config: cfg,
		Time:   time,
		Random: fx.rnd,
	}

	penv := fx.environment(fx.seq.Texture(crtSeqColor))
	penv.time = time
	penv.seed = fx.rnd.Noise(time, -3, -3) * 100
	penv.uniforms = env.Uniforms(int(w), int(h))

	withAccum := accum != nil && fx.primed
	if withAccum {
		penv.accumTextureID = fx.seq.Texture(fx.phosphorIdx)
	}

	prepareCRTState()

	next := crtSeqPing
	for _, name := range compositor.ActivePasses(cfg, withAccum) {
		sh, ok := fx.passes[name]
		if !ok {
			return nil, curated.Errorf(MissingShader, name)
		}

		id, err := fx.seq.Process(next, func() {
			sh.setAttributesArgs(penv)
			fx.quad.draw(sh.positionAttrib())
		})
		if err != nil {
			fx.output = 0
			return nil, err
		}
		penv.srcTextureID = id

		if next == crtSeqPing {
			next = crtSeqPong
		} else {
			next = crtSeqPing
		}
	}

	fx.output = penv.srcTextureID

	return color, nil
}

// the passes draw every pixel of the destination without blending
func prepareCRTState() {
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
}

// quad is the geometry covering the whole of the framebuffer
type quad struct {
	vao uint32
	vbo uint32
}

func newQuad() quad {
	var q quad
	vertices := [...]float32{
		-1, -1,
		1, -1,
		-1, 1,
		1, 1,
	}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(&vertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return q
}

func (q *quad) draw(position uint32) {
	gl.BindVertexArray(q.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.EnableVertexAttribArray(position)
	gl.VertexAttribPointerWithOffset(position, 2, gl.FLOAT, false, 0, 0)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

func (q *quad) destroy() {
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
}
