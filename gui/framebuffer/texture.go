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
	"image"
	"image/color"
	"math"

	"github.com/jetsetilly/crtterm/curated"
)

// RGBA is a single pixel. Values are normally in the range 0 to 1 and the
// color channels are not premultiplied.
type RGBA struct {
	R, G, B, A float32
}

// Opaque returns an opaque pixel from the color channels.
func Opaque(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Mix returns the linear interpolation between p and q.
func (p RGBA) Mix(q RGBA, t float32) RGBA {
	return RGBA{
		R: p.R + (q.R-p.R)*t,
		G: p.G + (q.G-p.G)*t,
		B: p.B + (q.B-p.B)*t,
		A: p.A + (q.A-p.A)*t,
	}
}

// Scale multiplies the color channels by f.
func (p RGBA) Scale(f float32) RGBA {
	return RGBA{R: p.R * f, G: p.G * f, B: p.B * f, A: p.A}
}

// Luma returns the perceptual brightness of the color channels.
func (p RGBA) Luma() float32 {
	return 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
}

// Texture is a rectangle of pixels allocated from a Device.
type Texture struct {
	dev       *Device
	destroyed bool

	Width  int
	Height int

	// pixels in row-major order
	Pix []RGBA
}

// Destroy returns the texture memory to the device. Safe to call more than
// once.
func (tex *Texture) Destroy() {
	if tex == nil || tex.destroyed {
		return
	}
	tex.destroyed = true
	tex.dev.release(int64(tex.Width) * int64(tex.Height) * bytesPerPixel)
	tex.Pix = nil
}

// Destroyed returns true if Destroy() has been called.
func (tex *Texture) Destroyed() bool {
	return tex.destroyed
}

// Bounds returns the texture dimensions as an image.Rectangle.
func (tex *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, tex.Width, tex.Height)
}

// SameSize returns true if both textures have the same dimensions.
func (tex *Texture) SameSize(o *Texture) bool {
	return o != nil && tex.Width == o.Width && tex.Height == o.Height
}

// At returns the pixel at x/y. Coordinates outside the texture return the
// transparent border.
func (tex *Texture) At(x, y int) RGBA {
	if x < 0 || y < 0 || x >= tex.Width || y >= tex.Height {
		return RGBA{}
	}
	return tex.Pix[y*tex.Width+x]
}

// Set the pixel at x/y. Coordinates outside the texture are ignored.
func (tex *Texture) Set(x, y int, p RGBA) {
	if x < 0 || y < 0 || x >= tex.Width || y >= tex.Height {
		return
	}
	tex.Pix[y*tex.Width+x] = p
}

// Fill every pixel with p.
func (tex *Texture) Fill(p RGBA) {
	for i := range tex.Pix {
		tex.Pix[i] = p
	}
}

// FillRect fills the intersection of r and the texture bounds with p.
func (tex *Texture) FillRect(r image.Rectangle, p RGBA) {
	r = r.Intersect(tex.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := tex.Pix[y*tex.Width : (y+1)*tex.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = p
		}
	}
}

// CopyFrom copies the pixels of src. The textures must be the same size.
func (tex *Texture) CopyFrom(src *Texture) error {
	if !tex.SameSize(src) {
		return curated.Errorf("framebuffer: copy between textures of different size (%dx%d and %dx%d)",
			tex.Width, tex.Height, src.Width, src.Height)
	}
	copy(tex.Pix, src.Pix)
	return nil
}

// Sample returns the bilinear interpolation of the texture at the normalised
// coordinates u/v. The border beyond the texture is transparent black.
//
// Sampling at the center of a pixel returns that pixel exactly.
func (tex *Texture) Sample(u, v float64) RGBA {
	x := u*float64(tex.Width) - 0.5
	y := v*float64(tex.Height) - 0.5

	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := float32(x - x0)
	fy := float32(y - y0)
	ix := int(x0)
	iy := int(y0)

	if fx == 0 && fy == 0 {
		return tex.At(ix, iy)
	}

	top := tex.At(ix, iy).Mix(tex.At(ix+1, iy), fx)
	bot := tex.At(ix, iy+1).Mix(tex.At(ix+1, iy+1), fx)
	return top.Mix(bot, fy)
}

func toByte(v float32) uint8 {
	if v <= 0 || v != v {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ToNRGBA converts the texture to an image. Values are clamped to the 0 to 1
// range.
func (tex *Texture) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(tex.Bounds())
	for i, p := range tex.Pix {
		img.Pix[i*4+0] = toByte(p.R)
		img.Pix[i*4+1] = toByte(p.G)
		img.Pix[i*4+2] = toByte(p.B)
		img.Pix[i*4+3] = toByte(p.A)
	}
	return img
}

// ColorAt returns the pixel at x/y as a color.NRGBA.
func (tex *Texture) ColorAt(x, y int) color.NRGBA {
	p := tex.At(x, y)
	return color.NRGBA{R: toByte(p.R), G: toByte(p.G), B: toByte(p.B), A: toByte(p.A)}
}
