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

package framebuffer

import (
	"github.com/jetsetilly/crtterm/logger"
)

// Sequence represents a sequence of textures of the same size.
type Sequence struct {
	dev      *Device
	textures []*Texture
	width    int
	height   int
	logTag   string
}

// NewSequence is the preferred method of initialisation of the Sequence type.
// The logTag is used when logging reallocation. An empty logTag prevents
// logging.
func NewSequence(dev *Device, numTextures int, logTag string) *Sequence {
	return &Sequence{
		dev:      dev,
		textures: make([]*Texture, numTextures),
		logTag:   logTag,
	}
}

// Destroy all textures in the sequence. Safe to call more than once.
func (seq *Sequence) Destroy() {
	for i := range seq.textures {
		seq.textures[i].Destroy()
		seq.textures[i] = nil
	}
	seq.width = 0
	seq.height = 0
}

// Setup the sequence for the specified width and height. Previous texture
// data is lost. Returns true if Setup has caused a change in texture data.
//
// If allocation fails the sequence is left with no textures and the error is
// returned.
func (seq *Sequence) Setup(width int, height int) (bool, error) {
	if seq.width == width && seq.height == height && seq.textures[0] != nil {
		return false, nil
	}

	// previous textures are released before allocating the new ones
	seq.Destroy()

	for i := range seq.textures {
		tex, err := seq.dev.NewTexture(width, height)
		if err != nil {
			seq.Destroy()
			return false, err
		}
		seq.textures[i] = tex
	}

	seq.width = width
	seq.height = height

	if seq.logTag != "" {
		logger.Logf(logger.Allow, seq.logTag, "textures reallocated (%dx%d)", width, height)
	}

	return true, nil
}

// Len returns the number of textures employed in the sequence.
func (seq *Sequence) Len() int {
	return len(seq.textures)
}

// Size returns the dimensions of the textures in the sequence.
func (seq *Sequence) Size() (int, int) {
	return seq.width, seq.height
}

// Ready returns true if Setup() has succeeded.
func (seq *Sequence) Ready() bool {
	return len(seq.textures) > 0 && seq.textures[0] != nil
}

// Texture returns the texture for idxTexture.
func (seq *Sequence) Texture(idxTexture int) *Texture {
	return seq.textures[idxTexture]
}

// Clear texture to transparent black.
func (seq *Sequence) Clear(idxTexture int) *Texture {
	tex := seq.textures[idxTexture]
	tex.Fill(RGBA{})
	return tex
}

// Process runs the supplied draw() function with the texture for idxTexture
// as the destination.
//
// Returns the texture that has been drawn to.
func (seq *Sequence) Process(idxTexture int, draw func(dst *Texture) error) (*Texture, error) {
	if err := seq.dev.Err(); err != nil {
		return nil, err
	}
	tex := seq.textures[idxTexture]
	if err := draw(tex); err != nil {
		return nil, err
	}
	return tex, nil
}
