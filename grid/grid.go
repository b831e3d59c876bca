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

package grid

// Point is a grid coordinate.
type Point struct {
	Row, Col int
}

// Before returns true if p is earlier than q in row-major order.
func (p Point) Before(q Point) bool {
	return p.Row < q.Row || (p.Row == q.Row && p.Col < q.Col)
}

// Cursor position and visibility.
type Cursor struct {
	Row, Col int
	Visible  bool
}

// Selection is a stream selection between two points. Anchor is the point at
// which the selection gesture started. Start and End are in the order the
// gesture produced them and are not necessarily normalised.
type Selection struct {
	Start, End Point
	Anchor     Point
}

// Normalized returns the selection with Start before End.
func (s Selection) Normalized() Selection {
	if s.End.Before(s.Start) {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Contains returns true if the cell at row/col is in the selection. Both ends
// are inclusive.
func (s Selection) Contains(row, col int) bool {
	n := s.Normalized()
	p := Point{Row: row, Col: col}
	return !p.Before(n.Start) && !n.End.Before(p)
}

// GridSize is the number of columns and rows in a grid.
type GridSize struct {
	Cols, Rows int
}

// Valid returns true if both dimensions are positive.
func (sz GridSize) Valid() bool {
	return sz.Cols > 0 && sz.Rows > 0
}

// Metrics is the pixel size of a single cell.
type Metrics struct {
	CellWidth, CellHeight int
}

// ComputeSize returns the number of whole cells that fit in the viewport.
// Degenerate input returns the zero GridSize.
func ComputeSize(width, height int, m Metrics) GridSize {
	if width <= 0 || height <= 0 || m.CellWidth <= 0 || m.CellHeight <= 0 {
		return GridSize{}
	}
	return GridSize{
		Cols: width / m.CellWidth,
		Rows: height / m.CellHeight,
	}
}

// CellUpdate is a single entry in a batch update.
type CellUpdate struct {
	Row, Col int
	Cell     Cell
}

// Grid is the full set of cells plus cursor and selection state. The zero
// value is a grid with no cells.
type Grid struct {
	size      GridSize
	cells     []Cell
	cursor    Cursor
	selection *Selection
}

// NewGrid is the preferred method of initialisation for the Grid type.
// Negative dimensions are treated as zero.
func NewGrid(cols, rows int) *Grid {
	g := &Grid{}
	g.Resize(cols, rows)
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() GridSize {
	return g.size
}

// InBounds returns true if row/col is a valid cell position.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.size.Rows && col < g.size.Cols
}

// Cell returns the cell at row/col. Out of range positions return the Blank
// cell.
func (g *Grid) Cell(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Blank
	}
	return g.cells[row*g.size.Cols+col]
}

// SetCell replaces the cell at row/col. Returns false without side effect if
// the position is out of range.
func (g *Grid) SetCell(row, col int, c Cell) bool {
	if !g.InBounds(row, col) {
		return false
	}
	g.cells[row*g.size.Cols+col] = c
	return true
}

// Row returns a copy of the cells in a row.
func (g *Grid) Row(row int) []Cell {
	if row < 0 || row >= g.size.Rows {
		return nil
	}
	r := make([]Cell, g.size.Cols)
	copy(r, g.cells[row*g.size.Cols:])
	return r
}

// Resize the grid. Cells in the overlapping region are preserved and new cells
// are blank. The cursor is hidden if it is no longer in bounds and the
// selection is cleared.
func (g *Grid) Resize(cols, rows int) {
	cols = max(cols, 0)
	rows = max(rows, 0)

	cells := make([]Cell, cols*rows)
	for i := range cells {
		cells[i] = Blank
	}
	for r := range min(rows, g.size.Rows) {
		copy(cells[r*cols:r*cols+min(cols, g.size.Cols)], g.cells[r*g.size.Cols:])
	}

	g.cells = cells
	g.size = GridSize{Cols: cols, Rows: rows}
	g.selection = nil
	g.SetCursor(g.cursor)
}

// Cursor returns the cursor state.
func (g *Grid) Cursor() Cursor {
	return g.cursor
}

// SetCursor changes the cursor. A cursor position out of range is stored but
// is always hidden.
func (g *Grid) SetCursor(c Cursor) {
	if !g.InBounds(c.Row, c.Col) {
		c.Visible = false
	}
	g.cursor = c
}

// Selection returns the current selection. The boolean is false if there is
// no selection.
func (g *Grid) Selection() (Selection, bool) {
	if g.selection == nil {
		return Selection{}, false
	}
	return *g.selection, true
}

// SetSelection replaces the selection.
func (g *Grid) SetSelection(s Selection) {
	g.selection = &s
}

// ClearSelection removes the selection.
func (g *Grid) ClearSelection() {
	g.selection = nil
}
