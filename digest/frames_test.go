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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/crtterm/digest"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/headless"
	"github.com/jetsetilly/crtterm/test"
)

func texture(t *testing.T, p framebuffer.RGBA) *framebuffer.Texture {
	t.Helper()
	tex, err := framebuffer.NewDevice(0).NewTexture(4, 4)
	test.DemandSuccess(t, err)
	tex.Fill(p)
	return tex
}

func TestFrames(t *testing.T) {
	red := texture(t, framebuffer.Opaque(1, 0, 0))
	blue := texture(t, framebuffer.Opaque(0, 0, 1))

	a := digest.NewFrames()
	b := digest.NewFrames()
	empty := a.Hash()

	test.DemandSuccess(t, a.Present(red))
	test.DemandSuccess(t, b.Present(red))
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectInequality(t, a.Hash(), empty)

	// the same frame presented again changes the chained hash
	first := a.Hash()
	test.DemandSuccess(t, a.Present(red))
	test.ExpectInequality(t, a.Hash(), first)
	test.ExpectEquality(t, a.Frames(), 2)

	// different content diverges
	test.DemandSuccess(t, b.Present(blue))
	test.ExpectInequality(t, a.Hash(), b.Hash())

	a.ResetDigest()
	test.ExpectEquality(t, a.Hash(), empty)
	test.ExpectEquality(t, a.Frames(), 0)
}

func TestFramesForward(t *testing.T) {
	dig := digest.NewFrames()
	p := headless.NewPNG(0, 0)
	dig.Forward(p)

	test.DemandSuccess(t, dig.Present(texture(t, framebuffer.Opaque(0, 1, 0))))
	test.ExpectEquality(t, p.Frames(), 1)
	test.ExpectEquality(t, dig.Frames(), 1)
}
