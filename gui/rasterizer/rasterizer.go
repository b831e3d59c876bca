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
	"image"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
)

const logTag = "rasterizer"

// Disposed is returned by operations on a rasterizer that has been disposed.
const Disposed = "rasterizer: disposed"

// Rasterizer draws a grid of cells into a texture.
type Rasterizer struct {
	dev   *framebuffer.Device
	atlas *fonts.Atlas
	cfg   crt.EffectConfig

	// the cells as last updated. the grid size is the size of this grid
	cells     *grid.Grid
	selection *grid.Selection

	// the backing texture
	seq *framebuffer.Sequence

	// dirty cells in row-major order
	dirty []bool
	full  bool

	// viewport dimensions in physical pixels
	viewportW int
	viewportH int

	listeners map[int]func(grid.GridSize)
	nextID    int

	// a resource error from the most recent reallocation. returned by
	// RenderStaticPass() so that the frame driver stops
	err error

	disposed bool
}

// NewRasterizer is the preferred method of initialisation for the Rasterizer
// type. The rasterizer takes ownership of the atlas and will destroy it on
// Dispose().
//
// The grid size is initially zero. Nothing is drawn until the grid size is
// set with UpdateGridSize() or SetViewport().
func NewRasterizer(dev *framebuffer.Device, atlas *fonts.Atlas, cfg crt.EffectConfig) *Rasterizer {
	return &Rasterizer{
		dev:       dev,
		atlas:     atlas,
		cfg:       cfg,
		cells:     grid.NewGrid(0, 0),
		seq:       framebuffer.NewSequence(dev, 1, logTag),
		listeners: make(map[int]func(grid.GridSize)),
	}
}

// SetConfig replaces the effect configuration. Only the font and background
// colors are used by the rasterizer. A change in either color causes the whole
// grid to be redrawn.
func (rz *Rasterizer) SetConfig(cfg crt.EffectConfig) {
	if cfg.FontColor != rz.cfg.FontColor || cfg.BackgroundColor != rz.cfg.BackgroundColor {
		rz.full = true
	}
	rz.cfg = cfg
}

// SetAtlas replaces the glyph atlas. The rasterizer takes ownership of the new
// atlas and the previous atlas is destroyed. The grid size is recomputed from
// the viewport because the cell metrics may have changed.
func (rz *Rasterizer) SetAtlas(atlas *fonts.Atlas) error {
	if rz.disposed {
		atlas.Destroy()
		return curated.Errorf(Disposed)
	}
	if rz.atlas != atlas {
		rz.atlas.Destroy()
		rz.atlas = atlas
	}

	sz := rz.cells.Size()
	if rz.viewportW > 0 && rz.viewportH > 0 {
		sz = grid.ComputeSize(rz.viewportW, rz.viewportH, rz.atlas.Metrics())
	}

	// force reallocation even if the grid size has not changed
	rz.seq.Destroy()
	return rz.UpdateGridSize(sz.Cols, sz.Rows)
}

// Metrics returns the cell metrics of the glyph atlas.
func (rz *Rasterizer) Metrics() grid.Metrics {
	return rz.atlas.Metrics()
}

// GridSize returns the current grid size.
func (rz *Rasterizer) GridSize() grid.GridSize {
	return rz.cells.Size()
}

// SetViewport recomputes the grid size from the viewport dimensions and the
// cell metrics. Zero or negative dimensions are treated as a viewport that is
// not ready and are ignored.
func (rz *Rasterizer) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	rz.viewportW = width
	rz.viewportH = height
	sz := grid.ComputeSize(width, height, rz.atlas.Metrics())
	return rz.UpdateGridSize(sz.Cols, sz.Rows)
}

// UpdateGridSize reallocates the backing texture for the new number of cells.
// Cell content in the overlapping region is preserved.
//
// The operation is a no-op if either dimension is zero or negative. An error
// is returned only if the texture cannot be allocated.
func (rz *Rasterizer) UpdateGridSize(cols, rows int) error {
	if rz.disposed {
		return curated.Errorf(Disposed)
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}

	m := rz.atlas.Metrics()
	changed := rz.cells.Size() != grid.GridSize{Cols: cols, Rows: rows}

	if changed || !rz.seq.Ready() {
		if _, err := rz.seq.Setup(cols*m.CellWidth, rows*m.CellHeight); err != nil {
			rz.err = err
			return err
		}
		rz.err = nil
		rz.full = true
	}

	if !changed {
		return nil
	}

	rz.cells.Resize(cols, rows)
	rz.selection = nil
	rz.dirty = make([]bool, cols*rows)
	rz.full = true

	sz := rz.cells.Size()
	logger.Logf(logger.Allow, logTag, "grid size %dx%d", sz.Cols, sz.Rows)

	for _, id := range rz.listenerIDs() {
		rz.listeners[id](sz)
	}

	return nil
}

// OnGridSizeChange registers a function to be called whenever the number of
// columns or rows changes. The returned function removes the listener.
func (rz *Rasterizer) OnGridSizeChange(f func(grid.GridSize)) func() {
	id := rz.nextID
	rz.nextID++
	rz.listeners[id] = f
	return func() {
		delete(rz.listeners, id)
	}
}

// listeners are called in the order they were registered
func (rz *Rasterizer) listenerIDs() []int {
	ids := make([]int, 0, len(rz.listeners))
	for id := range rz.nextID {
		if _, ok := rz.listeners[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (rz *Rasterizer) markDirty(row, col int) {
	if rz.cells.InBounds(row, col) {
		rz.dirty[row*rz.cells.Size().Cols+col] = true
	}
}

func (rz *Rasterizer) markRowsDirty(from, to int) {
	sz := rz.cells.Size()
	from = max(from, 0)
	to = min(to, sz.Rows-1)
	for r := from; r <= to; r++ {
		for c := range sz.Cols {
			rz.dirty[r*sz.Cols+c] = true
		}
	}
}

// UpdateCell replaces a single cell. Returns false without side effect if the
// position is out of range.
func (rz *Rasterizer) UpdateCell(row, col int, cell grid.Cell) bool {
	if rz.disposed || !rz.cells.SetCell(row, col, cell) {
		return false
	}

	// neighbouring cells are affected by double-width glyphs
	rz.markDirty(row, col-1)
	rz.markDirty(row, col)
	rz.markDirty(row, col+1)

	return true
}

// UpdateCells applies a batch of updates. Returns the number of updates that
// were in range.
func (rz *Rasterizer) UpdateCells(batch []grid.CellUpdate) int {
	var n int
	for _, u := range batch {
		if rz.UpdateCell(u.Row, u.Col, u.Cell) {
			n++
		}
	}
	return n
}

// UpdateCursor changes the cursor position and visibility. A position out of
// range hides the cursor.
func (rz *Rasterizer) UpdateCursor(c grid.Cursor) {
	if rz.disposed {
		return
	}
	old := rz.cells.Cursor()
	rz.cells.SetCursor(c)
	if old != rz.cells.Cursor() {
		rz.markDirty(old.Row, old.Col)
		rz.markDirty(c.Row, c.Col)
	}
}

// Cursor returns the cursor state.
func (rz *Rasterizer) Cursor() grid.Cursor {
	return rz.cells.Cursor()
}

// UpdateSelection changes the selection. A nil selection removes it.
func (rz *Rasterizer) UpdateSelection(sel *grid.Selection) {
	if rz.disposed {
		return
	}

	if rz.selection != nil {
		n := rz.selection.Normalized()
		rz.markRowsDirty(n.Start.Row, n.End.Row)
	}

	if sel == nil {
		rz.selection = nil
		return
	}

	s := *sel
	rz.selection = &s
	n := s.Normalized()
	rz.markRowsDirty(n.Start.Row, n.End.Row)
}

// Texture returns the backing texture. Returns nil if the grid size has not
// been set.
func (rz *Rasterizer) Texture() *framebuffer.Texture {
	if rz.disposed || !rz.seq.Ready() {
		return nil
	}
	return rz.seq.Texture(0)
}

// CellAt maps a position in the viewport to a grid position. The boolean is
// false if the position is outside the grid.
//
// The texture is presented stretched to fill the viewport so the mapping is
// scaled if the viewport is larger than the texture.
func (rz *Rasterizer) CellAt(x, y int) (grid.Point, bool) {
	sz := rz.cells.Size()
	m := rz.atlas.Metrics()
	if !sz.Valid() || x < 0 || y < 0 {
		return grid.Point{}, false
	}

	tw := sz.Cols * m.CellWidth
	th := sz.Rows * m.CellHeight
	if rz.viewportW > 0 && rz.viewportH > 0 {
		x = x * tw / rz.viewportW
		y = y * th / rz.viewportH
	}

	p := grid.Point{Row: y / m.CellHeight, Col: x / m.CellWidth}
	return p, rz.cells.InBounds(p.Row, p.Col)
}

// CellRect returns the pixel rectangle of a cell in the texture.
func (rz *Rasterizer) CellRect(row, col int) image.Rectangle {
	m := rz.atlas.Metrics()
	return image.Rect(col*m.CellWidth, row*m.CellHeight, (col+1)*m.CellWidth, (row+1)*m.CellHeight)
}

// Dispose releases the backing texture and the glyph atlas. Safe to call more
// than once.
func (rz *Rasterizer) Dispose() {
	if rz.disposed {
		return
	}
	rz.disposed = true
	rz.seq.Destroy()
	rz.atlas.Destroy()
	clear(rz.listeners)
	logger.Log(logger.Allow, logTag, "disposed")
}
