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

package headless

import (
	"image"
	"image/png"
	"os"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"golang.org/x/image/draw"
)

// Sentinal error patterns.
const (
	NoFrame   = "headless: no frame to save"
	SaveError = "headless: %v"
)

// PNG implements the driver.Presenter interface. The most recently presented
// frame is kept as an image and can be saved to a PNG file.
type PNG struct {
	// size of saved image. a zero size is the size of the presented frame
	width  int
	height int

	last   *image.NRGBA
	frames int
}

// NewPNG is the preferred method of initialisation for the PNG type. The
// width and height arguments are the size of the image to save. Frames are
// scaled to that size. Use zero for both to keep the size of the presented
// frame.
func NewPNG(width, height int) *PNG {
	return &PNG{
		width:  width,
		height: height,
	}
}

// Present implements the driver.Presenter interface.
func (p *PNG) Present(tex *framebuffer.Texture) error {
	img := tex.ToNRGBA()

	if p.width > 0 && p.height > 0 && (p.width != tex.Width || p.height != tex.Height) {
		scaled := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = scaled
	}

	p.last = img
	p.frames++

	return nil
}

// Frames returns the number of frames presented.
func (p *PNG) Frames() int {
	return p.frames
}

// Image returns the most recently presented frame. Returns nil if no frame has
// been presented.
func (p *PNG) Image() *image.NRGBA {
	return p.last
}

// Save the most recently presented frame to the named file. An existing file
// is overwritten.
func (p *PNG) Save(filename string) error {
	if p.last == nil {
		return curated.Errorf(NoFrame)
	}

	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	defer f.Close()

	err = png.Encode(f, p.last)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	return nil
}
