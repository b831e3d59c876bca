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

// Package burnin implements phosphor persistence. Every frame the rasterized
// grid is blended into an accumulation texture which decays exponentially:
//
//	accum' = accum * decay + current * (1 - decay)
//
// The decay factor is derived from the burn-in intensity with the Decay()
// function. Higher intensity means slower decay and longer trails.
//
// The accumulation texture always matches the size of the rasterized texture.
// When the size changes the texture is reallocated and reset to the current
// frame. Trails do not survive a resize.
package burnin

import (
	"math"

	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
)

const logTag = "burnin"

// the decay factor never reaches one. a factor of one would mean the
// accumulation never changes
const maxDecay = 0.99

// Decay returns the proportion of the accumulation that survives a single
// frame for the burn-in intensity. An intensity of zero returns zero.
func Decay(burnIn float64) float32 {
	b := math.Min(math.Max(burnIn, 0), 1)
	return float32(math.Min(1-(1-b)*(1-b), maxDecay))
}

// Accumulator owns the accumulation texture.
type Accumulator struct {
	seq      *framebuffer.Sequence
	primed   bool
	disposed bool
}

// NewAccumulator is the preferred method of initialisation for the
// Accumulator type. The texture is not allocated until the first call to
// Update().
func NewAccumulator(dev *framebuffer.Device) *Accumulator {
	return &Accumulator{
		seq: framebuffer.NewSequence(dev, 1, logTag),
	}
}

// Update blends the current frame into the accumulation texture and returns
// the accumulation texture.
//
// A nil current texture means that there is nothing to accumulate. The
// existing accumulation texture is returned unchanged, which may be nil.
func (acc *Accumulator) Update(current *framebuffer.Texture, burnIn float64) (*framebuffer.Texture, error) {
	if acc.disposed {
		return nil, nil
	}
	if current == nil {
		return acc.Texture(), nil
	}

	changed, err := acc.seq.Setup(current.Width, current.Height)
	if err != nil {
		acc.primed = false
		return nil, err
	}
	if changed {
		if acc.primed {
			logger.Log(logger.Allow, logTag, "accumulation reset by resize")
		}
		acc.primed = false
	}

	decay := Decay(burnIn)

	return acc.seq.Process(0, func(dst *framebuffer.Texture) error {
		if !acc.primed || decay == 0 {
			acc.primed = true
			return dst.CopyFrom(current)
		}

		keep := 1 - decay
		for i, p := range dst.Pix {
			c := current.Pix[i]
			dst.Pix[i] = framebuffer.RGBA{
				R: p.R*decay + c.R*keep,
				G: p.G*decay + c.G*keep,
				B: p.B*decay + c.B*keep,
				A: p.A*decay + c.A*keep,
			}
		}
		return nil
	})
}

// Texture returns the accumulation texture. Returns nil before the first
// successful call to Update().
func (acc *Accumulator) Texture() *framebuffer.Texture {
	if acc.disposed || !acc.seq.Ready() {
		return nil
	}
	return acc.seq.Texture(0)
}

// Reset discards the accumulated history. The next call to Update() will set
// the accumulation to the current frame.
func (acc *Accumulator) Reset() {
	acc.primed = false
}

// Dispose releases the accumulation texture. Safe to call more than once.
func (acc *Accumulator) Dispose() {
	if acc.disposed {
		return
	}
	acc.disposed = true
	acc.seq.Destroy()
}
