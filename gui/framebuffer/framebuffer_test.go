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

package framebuffer_test

import (
	"image"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/test"
)

func TestAllocation(t *testing.T) {
	// room for exactly two 10x10 textures
	dev := framebuffer.NewDevice(2 * 10 * 10 * 16)

	a, err := dev.NewTexture(10, 10)
	test.DemandSuccess(t, err)
	b, err := dev.NewTexture(10, 10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dev.Live(), 2)

	_, err = dev.NewTexture(1, 1)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.AllocationError))

	// destroy is idempotent
	a.Destroy()
	a.Destroy()
	test.ExpectEquality(t, dev.Live(), 1)
	test.ExpectSuccess(t, a.Destroyed())

	c, err := dev.NewTexture(10, 10)
	test.ExpectSuccess(t, err)
	b.Destroy()
	c.Destroy()
	test.ExpectEquality(t, dev.Live(), 0)
	test.ExpectEquality(t, dev.Used(), int64(0))

	_, err = dev.NewTexture(0, 10)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.AllocationError))
}

func TestContextLoss(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	test.ExpectSuccess(t, dev.Err())

	dev.Lose()
	test.ExpectSuccess(t, curated.Is(dev.Err(), framebuffer.ContextLost))
	_, err := dev.NewTexture(4, 4)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ContextLost))
}

func TestSample(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	tex, err := dev.NewTexture(2, 1)
	test.DemandSuccess(t, err)
	defer tex.Destroy()

	tex.Set(0, 0, framebuffer.Opaque(1, 0, 0))
	tex.Set(1, 0, framebuffer.Opaque(0, 0, 1))

	// pixel centers are exact
	test.ExpectEquality(t, tex.Sample(0.25, 0.5), framebuffer.Opaque(1, 0, 0))
	test.ExpectEquality(t, tex.Sample(0.75, 0.5), framebuffer.Opaque(0, 0, 1))

	// half way between the two pixels
	p := tex.Sample(0.5, 0.5)
	test.ExpectApproximate(t, p.R, 0.5, 0.001)
	test.ExpectApproximate(t, p.B, 0.5, 0.001)

	// border is transparent
	test.ExpectEquality(t, tex.At(-1, 0), framebuffer.RGBA{})
	test.ExpectEquality(t, tex.Sample(-1, -1), framebuffer.RGBA{})
}

func TestFillAndCopy(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	a, _ := dev.NewTexture(4, 4)
	b, _ := dev.NewTexture(4, 4)
	c, _ := dev.NewTexture(2, 2)
	defer a.Destroy()
	defer b.Destroy()
	defer c.Destroy()

	a.FillRect(image.Rect(2, 2, 10, 10), framebuffer.Opaque(1, 1, 1))
	test.ExpectEquality(t, a.At(1, 1), framebuffer.RGBA{})
	test.ExpectEquality(t, a.At(3, 3), framebuffer.Opaque(1, 1, 1))

	test.ExpectSuccess(t, b.CopyFrom(a))
	test.ExpectEquality(t, b.At(3, 3), framebuffer.Opaque(1, 1, 1))
	test.ExpectFailure(t, c.CopyFrom(a))

	img := a.ToNRGBA()
	test.ExpectEquality(t, img.NRGBAAt(3, 3).R, uint8(255))
	test.ExpectEquality(t, img.NRGBAAt(0, 0).A, uint8(0))
}

func TestSequence(t *testing.T) {
	dev := framebuffer.NewDevice(0)
	seq := framebuffer.NewSequence(dev, 3, "")

	changed, err := seq.Setup(8, 6)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, changed)
	test.ExpectEquality(t, dev.Live(), 3)

	// same size does not change anything
	changed, err = seq.Setup(8, 6)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, changed)

	seq.Texture(0).Fill(framebuffer.Opaque(1, 0, 0))

	// new size releases old textures before allocating new ones
	changed, err = seq.Setup(4, 4)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, changed)
	test.ExpectEquality(t, dev.Live(), 3)
	test.ExpectEquality(t, seq.Texture(0).At(0, 0), framebuffer.RGBA{})

	tex, err := seq.Process(1, func(dst *framebuffer.Texture) error {
		dst.Fill(framebuffer.Opaque(0, 1, 0))
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, tex, seq.Texture(1))
	test.ExpectEquality(t, seq.Clear(1).At(0, 0), framebuffer.RGBA{})

	seq.Destroy()
	seq.Destroy()
	test.ExpectEquality(t, dev.Live(), 0)
	test.ExpectFailure(t, seq.Ready())
}

func TestMask(t *testing.T) {
	dev := framebuffer.NewDevice(100)

	m, err := dev.NewMask(10, 9)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dev.Used(), int64(90))
	test.ExpectEquality(t, dev.Live(), 1)
	test.ExpectEquality(t, m.Rect.Dx(), 10)

	// masks share the budget with textures
	_, err = dev.NewMask(5, 5)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.AllocationError))
	_, err = dev.NewTexture(1, 1)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.AllocationError))

	m.Destroy()
	m.Destroy()
	test.ExpectSuccess(t, m.Destroyed())
	test.ExpectEquality(t, dev.Used(), int64(0))
	test.ExpectEquality(t, dev.Live(), 0)

	dev.Lose()
	_, err = dev.NewMask(1, 1)
	test.ExpectSuccess(t, curated.Is(err, framebuffer.ContextLost))
}
