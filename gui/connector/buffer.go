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

package connector

import (
	"github.com/jetsetilly/crtterm/grid"
)

// Change describes a mutation of the external buffer.
type Change struct {
	// rows in which one or more cells may have changed
	Rows []int

	Cursor    bool
	Selection bool

	// a bulk change for which incremental diffing is unsafe. the entire
	// buffer will be read
	Full bool
}

// Buffer is the capability required of an external terminal emulation buffer.
type Buffer interface {
	Size() grid.GridSize
	Cell(row, col int) grid.Cell
	Cursor() grid.Cursor
	Selection() (grid.Selection, bool)

	// Subscribe registers a function that is called for every change to the
	// buffer. The returned function removes the subscription
	Subscribe(func(Change)) func()

	Resize(cols, rows int) error
}

// SelectionSetter is implemented by buffers that accept selection gestures.
// A nil selection clears the selection.
type SelectionSetter interface {
	SetSelection(sel *grid.Selection)
}

// Target is the receiver of grid updates. Implemented by the rasterizer.
type Target interface {
	GridSize() grid.GridSize
	OnGridSizeChange(func(grid.GridSize)) func()
	UpdateCells(batch []grid.CellUpdate) int
	UpdateCursor(c grid.Cursor)
	UpdateSelection(sel *grid.Selection)
	CellAt(x, y int) (grid.Point, bool)
}

// PointerKind is the type of pointer event.
type PointerKind int

// List of valid PointerKind values.
const (
	PointerPress PointerKind = iota
	PointerDrag
	PointerRelease
)

// PointerEvent is a pointer gesture on the rendered surface. Coordinates are
// in pixels of the rendered surface.
type PointerEvent struct {
	Kind PointerKind
	X, Y int
}

// PointerSource is the element on which pointer gestures occur. The returned
// function removes the handler.
type PointerSource interface {
	OnPointer(func(PointerEvent)) func()
}
