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

package rasterizer

import (
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/lucasb-eyer/go-colorful"
)

// dim text is drawn with the foreground color this far toward the
// background color
const dimAmount = 0.5

func fromColorful(c colorful.Color) framebuffer.RGBA {
	return framebuffer.Opaque(float32(c.R), float32(c.G), float32(c.B))
}

func fromGrid(c grid.Color, def colorful.Color) framebuffer.RGBA {
	if c.Default {
		return fromColorful(def)
	}
	return framebuffer.Opaque(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255)
}

// colors returns the resolved foreground and background color of a cell.
// inverse video, the selection and the cursor all swap the two colors
func (rz *Rasterizer) colors(row, col int, cell grid.Cell) (framebuffer.RGBA, framebuffer.RGBA) {
	fg := fromGrid(cell.Fg, rz.cfg.FontColor)
	bg := fromGrid(cell.Bg, rz.cfg.BackgroundColor)

	if cell.Attr.Has(grid.AttrDim) {
		fg = fg.Mix(bg, dimAmount)
	}

	swap := cell.Attr.Has(grid.AttrInverse)
	if rz.selection != nil && rz.selection.Contains(row, col) {
		swap = !swap
	}
	if cur := rz.cells.Cursor(); cur.Visible && cur.Row == row && cur.Col == col {
		swap = !swap
	}
	if swap {
		fg, bg = bg, fg
	}

	return fg, bg
}

// RenderStaticPass draws the dirty cells into the texture and returns the
// texture. Returns nil without error if the grid size is not yet known.
//
// An error is returned if the texture could not be allocated by the most
// recent change of grid size or if the device context has been lost. Failure
// to grow the glyph atlas is also an error.
func (rz *Rasterizer) RenderStaticPass() (*framebuffer.Texture, error) {
	if rz.disposed {
		return nil, nil
	}
	if rz.err != nil {
		return nil, rz.err
	}
	if err := rz.dev.Err(); err != nil {
		return nil, err
	}
	if !rz.cells.Size().Valid() || !rz.seq.Ready() {
		return nil, nil
	}

	sz := rz.cells.Size()

	return rz.seq.Process(0, func(dst *framebuffer.Texture) error {
		for row := range sz.Rows {
			rz.drawRow(dst, row)
		}
		rz.full = false
		clear(rz.dirty)

		// glyphs missing because the atlas could not grow are a resource
		// error like any other
		return rz.atlas.Err()
	})
}

func (rz *Rasterizer) isDirty(row, col int) bool {
	return rz.full || rz.dirty[row*rz.cells.Size().Cols+col]
}

// backgrounds for every dirty cell in the row are drawn before any glyph so
// that a double-width glyph is not overwritten by the background of the cell
// to its right
func (rz *Rasterizer) drawRow(dst *framebuffer.Texture, row int) {
	sz := rz.cells.Size()

	var drawn bool
	for col := range sz.Cols {
		if !rz.isDirty(row, col) {
			continue
		}
		drawn = true
		_, bg := rz.colors(row, col, rz.cells.Cell(row, col))
		dst.FillRect(rz.CellRect(row, col), bg)
	}
	if !drawn {
		return
	}

	for col := range sz.Cols {
		// a wide glyph to the left of a dirty cell must be drawn again
		redraw := rz.isDirty(row, col)
		if !redraw && col+1 < sz.Cols && rz.isDirty(row, col+1) {
			redraw = fonts.Width(rz.cells.Cell(row, col).Char) > 1
		}
		if redraw {
			rz.drawGlyph(dst, row, col)
		}
	}
}

func (rz *Rasterizer) drawGlyph(dst *framebuffer.Texture, row, col int) {
	cell := rz.cells.Cell(row, col)
	fg, _ := rz.colors(row, col, cell)
	r := rz.CellRect(row, col)

	if cell.Char != 0 && cell.Char != ' ' {
		if src, ok := rz.atlas.Glyph(cell.Char, cell.Attr.Has(grid.AttrBold)); ok {
			for y := range src.Dy() {
				for x := range src.Dx() {
					cov := rz.atlas.Coverage(src.Min.X+x, src.Min.Y+y)
					if cov == 0 {
						continue
					}
					px, py := r.Min.X+x, r.Min.Y+y
					dst.Set(px, py, dst.At(px, py).Mix(fg, cov))
				}
			}
		}
	}

	if cell.Attr.Has(grid.AttrUnderline) {
		w := r.Dx() * max(fonts.Width(cell.Char), 1)
		for x := range w {
			dst.Set(r.Min.X+x, r.Max.Y-1, fg)
		}
	}
}
