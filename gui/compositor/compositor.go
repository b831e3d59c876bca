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
	"github.com/jetsetilly/crtterm/random"
)

const logTag = "compositor"

const (
	// the two textures used for chaining passes together
	compositorPing = iota
	compositorPong

	// the finalised texture after all processing. the ping/pong textures
	// are clobbered on the next call to Render() so the result is copied
	// here
	compositorOutput

	numCompositorTextures
)

// Compositor applies the chain of CRT effect passes.
type Compositor struct {
	seq    *framebuffer.Sequence
	passes []Pass
	rnd    *random.Random

	// names of passes applied by the most recent call to Render()
	applied []string

	disposed bool
}

// NewCompositor is the preferred method of initialisation for the Compositor
// type. If rnd is nil a new instance of random.Random is created.
func NewCompositor(dev *framebuffer.Device, rnd *random.Random) *Compositor {
	if rnd == nil {
		rnd = random.NewRandom()
	}
	return &Compositor{
		seq:    framebuffer.NewSequence(dev, numCompositorTextures, logTag),
		passes: newPasses(),
		rnd:    rnd,
	}
}

func newPasses() []Pass {
	return []Pass{
		warpPass{},
		rasterizationPass{},
		chromaticPass{},
		&bloomPass{},
		hsyncPass{},
		jitterPass{},
		noisePass{},
		glowlinePass{},
		finalPass{},
	}
}

// Passes returns the names of the passes in the order they are applied.
func (cmp *Compositor) Passes() []string {
	n := make([]string, len(cmp.passes))
	for i, p := range cmp.passes {
		n[i] = p.Name()
	}
	return n
}

// Applied returns the names of the passes that were active during the most
// recent call to Render().
func (cmp *Compositor) Applied() []string {
	return cmp.applied
}

// Render composes the final frame from the rasterized texture and the burn-in
// accumulation. The accum argument may be nil.
//
// A nil color texture means that the rasterizer is not ready. Render returns
// nil without error in that case.
//
// The returned texture is owned by the Compositor and is valid until the next
// call to Render() or Dispose().
func (cmp *Compositor) Render(color *framebuffer.Texture, accum *framebuffer.Texture, cfg crt.EffectConfig, time float64) (*framebuffer.Texture, error) {
	if cmp.disposed || color == nil {
		return nil, nil
	}

	_, err := cmp.seq.Setup(color.Width, color.Height)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Config: cfg,
		Time:   time,
		Accum:  accum,
		Random: cmp.rnd,
	}

	cmp.applied = cmp.applied[:0]

	src, err := cmp.seq.Process(compositorPing, func(dst *framebuffer.Texture) error {
		return dst.CopyFrom(color)
	})
	if err != nil {
		return nil, err
	}

	next := compositorPong
	for _, p := range cmp.passes {
		if !p.Active(env) {
			continue
		}

		s := src
		src, err = cmp.seq.Process(next, func(dst *framebuffer.Texture) error {
			return p.Apply(dst, s, env)
		})
		if err != nil {
			return nil, err
		}

		cmp.applied = append(cmp.applied, p.Name())

		if next == compositorPing {
			next = compositorPong
		} else {
			next = compositorPing
		}
	}

	return cmp.seq.Process(compositorOutput, func(dst *framebuffer.Texture) error {
		return dst.CopyFrom(src)
	})
}

// Texture returns the output of the most recent call to Render(). Returns nil
// before the first call.
func (cmp *Compositor) Texture() *framebuffer.Texture {
	if cmp.disposed || !cmp.seq.Ready() {
		return nil
	}
	return cmp.seq.Texture(compositorOutput)
}

// Dispose releases all textures. Safe to call more than once.
func (cmp *Compositor) Dispose() {
	if cmp.disposed {
		return
	}
	cmp.disposed = true
	cmp.seq.Destroy()
}
