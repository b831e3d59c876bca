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

package fonts

import (
	"image"
	"image/color"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// the number of slots in each row of the atlas image
const slotsPerRow = 32

// maximum number of slot rows. with slotsPerRow this is enough for every
// glyph in a typical terminal session, including bold variations
const maxSlotRows = 256

type glyphKey struct {
	r    rune
	bold bool
}

// Atlas is a cache of rasterized glyphs. The atlas image is allocated from a
// framebuffer.Device and counts against the device budget.
type Atlas struct {
	dev     *framebuffer.Device
	face    font.Face
	metrics grid.Metrics
	ascent  int

	img   *framebuffer.Mask
	slots map[glyphKey]image.Rectangle

	// resource error from the most recent attempt to grow the atlas image
	err error

	// next free slot
	col, row int

	destroyed bool
}

// NewAtlas is the preferred method of initialisation for the Atlas type.
func NewAtlas(dev *framebuffer.Device, face font.Face) (*Atlas, error) {
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, curated.Errorf(FaceError, "face has no glyph for 'M'")
	}

	m := face.Metrics()

	a := &Atlas{
		dev:  dev,
		face: face,
		metrics: grid.Metrics{
			CellWidth:  adv.Ceil(),
			CellHeight: m.Height.Ceil(),
		},
		ascent: m.Ascent.Ceil(),
		slots:  make(map[glyphKey]image.Rectangle),
	}

	if a.metrics.CellWidth <= 0 || a.metrics.CellHeight <= 0 {
		return nil, curated.Errorf(FaceError, "face has degenerate metrics")
	}

	// the atlas grows as required. begin with room for four rows of slots
	var err error
	a.img, err = dev.NewMask(slotsPerRow*a.metrics.CellWidth, 4*a.metrics.CellHeight)
	if err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "fonts", "atlas created: cell size %dx%d", a.metrics.CellWidth, a.metrics.CellHeight)

	return a, nil
}

// Metrics returns the pixel size of a single grid cell.
func (a *Atlas) Metrics() grid.Metrics {
	return a.metrics
}

// Image returns the atlas image. The rectangle returned by Glyph() is in the
// coordinate space of this image.
func (a *Atlas) Image() *image.Alpha {
	if a.destroyed {
		return nil
	}
	return a.img.Alpha
}

// Err returns the error that prevented the atlas image from growing. Glyphs
// that could not be added to the atlas are drawn as blank cells.
func (a *Atlas) Err() error {
	return a.err
}

// Width returns the number of cells occupied by the rune. Zero width runes
// return zero.
func Width(r rune) int {
	if r == 0 {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// Glyph returns the region of the atlas image containing the rasterized rune.
// The rune is rasterized on first use. The boolean is false if the face has no
// glyph for the rune or if the atlas is full.
//
// The height of the region is always the cell height. The width is the cell
// width or twice the cell width for double-width runes.
func (a *Atlas) Glyph(r rune, bold bool) (image.Rectangle, bool) {
	if a.destroyed {
		return image.Rectangle{}, false
	}

	key := glyphKey{r: r, bold: bold}
	if rect, ok := a.slots[key]; ok {
		return rect, !rect.Empty()
	}

	w := Width(r)
	if w <= 0 {
		a.slots[key] = image.Rectangle{}
		return image.Rectangle{}, false
	}

	rect, ok := a.allocate(w)
	if !ok {
		return image.Rectangle{}, false
	}

	if !a.rasterize(r, bold, rect) {
		rect = image.Rectangle{}
	}
	a.slots[key] = rect

	return rect, !rect.Empty()
}

// allocate w consecutive slots on the same row
func (a *Atlas) allocate(w int) (image.Rectangle, bool) {
	if a.col+w > slotsPerRow {
		a.col = 0
		a.row++
	}
	if a.row >= maxSlotRows {
		logger.Log(logger.Allow, "fonts", "atlas is full")
		return image.Rectangle{}, false
	}

	cw := a.metrics.CellWidth
	ch := a.metrics.CellHeight

	// grow atlas image by doubling its height
	if (a.row+1)*ch > a.img.Rect.Dy() {
		img, err := a.dev.NewMask(a.img.Rect.Dx(), a.img.Rect.Dy()*2)
		if err != nil {
			if a.err == nil {
				logger.Logf(logger.Allow, "fonts", "atlas cannot grow: %v", err)
			}
			a.err = err

			// the row will be tried again for the next glyph
			a.row--
			a.col = slotsPerRow
			return image.Rectangle{}, false
		}
		copy(img.Pix, a.img.Pix)
		a.img.Destroy()
		a.img = img
		a.err = nil
	}

	rect := image.Rect(a.col*cw, a.row*ch, (a.col+w)*cw, (a.row+1)*ch)
	a.col += w

	return rect, true
}

func (a *Atlas) rasterize(r rune, bold bool, rect image.Rectangle) bool {
	dst := a.img.SubImage(rect).(*image.Alpha)

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Alpha{A: 0xff}),
		Face: a.face,
		Dot:  fixed.P(rect.Min.X, rect.Min.Y+a.ascent),
	}

	if _, ok := a.face.GlyphAdvance(r); !ok {
		return false
	}

	d.DrawString(string(r))

	// synthetic bold by drawing the glyph a second time one pixel to the
	// right. the drawing is clipped to the slot by the sub-image
	if bold {
		d.Dot = fixed.P(rect.Min.X+1, rect.Min.Y+a.ascent)
		d.DrawString(string(r))
	}

	return true
}

// Coverage returns the glyph coverage at a pixel of the atlas image in the
// range 0 to 1.
func (a *Atlas) Coverage(x, y int) float32 {
	return float32(a.img.AlphaAt(x, y).A) / 255
}

// Destroy releases the atlas image. Safe to call more than once.
func (a *Atlas) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.img.Destroy()
	a.slots = nil
}
