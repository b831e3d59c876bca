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

// Package framebuffer is the GPU counterpart of the gui/framebuffer package. A
// Sequence is a set of textures of the same size that can be attached in turn
// to a single framebuffer object and drawn to by a shader program.
//
// All functions must be called from the goroutine that owns the GL context.
package framebuffer

import (
	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/crtterm/curated"
	cpu "github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
)

// Sequence represents the sequence of textures that can be assigned to a
// framebuffer.
type Sequence struct {
	textures []uint32
	fbo      uint32
	width    int32
	height   int32

	logTag string
}

// NewSequence is the preferred method of initialisation of the Sequence type.
// Textures are not allocated until Setup() is called.
func NewSequence(numTextures int, logTag string) *Sequence {
	seq := &Sequence{
		textures: make([]uint32, numTextures),
		logTag:   logTag,
	}
	gl.GenFramebuffers(1, &seq.fbo)
	return seq
}

// Destroy framebuffer and all textures.
func (seq *Sequence) Destroy() {
	seq.release()
	if seq.fbo != 0 {
		gl.DeleteFramebuffers(1, &seq.fbo)
		seq.fbo = 0
	}
}

func (seq *Sequence) release() {
	for i := range seq.textures {
		if seq.textures[i] != 0 {
			gl.DeleteTextures(1, &seq.textures[i])
			seq.textures[i] = 0
		}
	}
	seq.width = 0
	seq.height = 0
}

// Setup framebuffer for specified width and height. Previous texture data is
// lost. Returns true if Setup has caused a change in texture data.
//
// Textures are floating point so that values outside of the zero to one range
// survive between passes. An error is returned if the textures cannot be
// allocated or cannot be attached to the framebuffer.
func (seq *Sequence) Setup(width int32, height int32) (bool, error) {
	if seq.width == width && seq.height == height {
		return false, nil
	}

	seq.release()

	if width <= 0 || height <= 0 {
		return true, curated.Errorf(cpu.AllocationError, width, height, "invalid dimensions")
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, seq.fbo)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	for i := range seq.textures {
		gl.GenTextures(1, &seq.textures[i])
		gl.BindTexture(gl.TEXTURE_2D, seq.textures[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0,
			gl.RGBA16F, width, height, 0,
			gl.RGBA, gl.FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)

		if e := gl.GetError(); e != gl.NO_ERROR {
			seq.release()
			return true, curated.Errorf(cpu.AllocationError, width, height, glError(e))
		}

		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, seq.textures[i], 0)
		if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
			seq.release()
			return true, curated.Errorf(cpu.AllocationError, width, height, "incomplete framebuffer")
		}

		clear := [4]float32{}
		gl.ClearBufferfv(gl.COLOR, 0, &clear[0])
	}

	seq.width = width
	seq.height = height

	if seq.logTag != "" {
		logger.Logf(logger.Allow, seq.logTag, "gpu textures %dx%d", width, height)
	}

	return true, nil
}

// Ready returns true if the textures have been allocated.
func (seq *Sequence) Ready() bool {
	return seq.width > 0 && seq.height > 0
}

// Len returns the number of textures employed in the framebuffer sequence.
func (seq *Sequence) Len() int {
	return len(seq.textures)
}

// Size returns the width and height of the textures.
func (seq *Sequence) Size() (int32, int32) {
	return seq.width, seq.height
}

// Texture returns the texture ID related to the idxTexture.
func (seq *Sequence) Texture(idxTexture int) uint32 {
	return seq.textures[idxTexture]
}

func (seq *Sequence) bind(idxTexture int) uint32 {
	id := seq.textures[idxTexture]
	gl.BindFramebuffer(gl.FRAMEBUFFER, seq.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, id, 0)
	gl.Viewport(0, 0, seq.width, seq.height)
	return id
}

// Clear texture to transparent black.
func (seq *Sequence) Clear(idxTexture int) uint32 {
	id := seq.bind(idxTexture)
	clear := [4]float32{}
	gl.ClearBufferfv(gl.COLOR, 0, &clear[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return id
}

// Upload replaces the contents of the texture with float RGBA pixels. The
// number of pixels must match the size of the sequence.
func (seq *Sequence) Upload(idxTexture int, pix []cpu.RGBA) error {
	if int32(len(pix)) != seq.width*seq.height {
		return curated.Errorf(cpu.AllocationError, seq.width, seq.height, "pixel count mismatch")
	}
	gl.BindTexture(gl.TEXTURE_2D, seq.textures[idxTexture])
	gl.TexSubImage2D(gl.TEXTURE_2D, 0,
		0, 0, seq.width, seq.height,
		gl.RGBA, gl.FLOAT,
		gl.Ptr(&pix[0]))
	return nil
}

// Process assigns the texture related to idxTexture to the framebuffer and
// runs the supplied draw() function.
//
// Returns the texture ID (not the index) that has been assigned to the
// framebuffer. Any error reported by the GL context after drawing is treated
// as a lost context.
func (seq *Sequence) Process(idxTexture int, draw func()) (uint32, error) {
	id := seq.bind(idxTexture)
	draw()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		logger.Logf(logger.Allow, seq.logTag, "gl error: %s", glError(e))
		return id, curated.Errorf(cpu.ContextLost)
	}
	return id, nil
}

func glError(e uint32) string {
	switch e {
	case gl.OUT_OF_MEMORY:
		return "out of memory"
	case gl.INVALID_OPERATION:
		return "invalid operation"
	case gl.INVALID_VALUE:
		return "invalid value"
	case gl.INVALID_ENUM:
		return "invalid enum"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "invalid framebuffer operation"
	}
	return "unknown error"
}
