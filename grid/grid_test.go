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

package grid_test

import (
	"testing"

	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/test"
)

func TestComputeSize(t *testing.T) {
	m := grid.Metrics{CellWidth: 7, CellHeight: 13}

	test.ExpectEquality(t, grid.ComputeSize(560, 312, m), grid.GridSize{Cols: 80, Rows: 24})

	// partial cells are not counted
	test.ExpectEquality(t, grid.ComputeSize(566, 324, m), grid.GridSize{Cols: 80, Rows: 24})

	// same input, same result
	test.ExpectEquality(t, grid.ComputeSize(1000, 700, m), grid.ComputeSize(1000, 700, m))

	// degenerate input
	test.ExpectEquality(t, grid.ComputeSize(0, 312, m), grid.GridSize{})
	test.ExpectEquality(t, grid.ComputeSize(560, -1, m), grid.GridSize{})
	test.ExpectEquality(t, grid.ComputeSize(560, 312, grid.Metrics{}), grid.GridSize{})
	test.ExpectFailure(t, grid.GridSize{Cols: 80}.Valid())
}

func TestSetCell(t *testing.T) {
	g := grid.NewGrid(80, 24)
	c := grid.Cell{Char: 'A', Fg: grid.RGB(255, 255, 255), Bg: grid.RGB(0, 0, 0)}

	test.ExpectSuccess(t, g.SetCell(0, 0, c))
	test.ExpectEquality(t, g.Cell(0, 0), c)

	// out of range is rejected without side effect
	test.ExpectFailure(t, g.SetCell(24, 0, c))
	test.ExpectFailure(t, g.SetCell(0, 80, c))
	test.ExpectFailure(t, g.SetCell(-1, 0, c))
	test.ExpectEquality(t, g.Cell(24, 0), grid.Blank)
}

func TestResize(t *testing.T) {
	g := grid.NewGrid(10, 5)
	c := grid.Cell{Char: 'x', Fg: grid.DefaultColor, Bg: grid.DefaultColor}
	g.SetCell(1, 2, c)
	g.SetCell(4, 9, c)
	g.SetCursor(grid.Cursor{Row: 4, Col: 9, Visible: true})
	g.SetSelection(grid.Selection{End: grid.Point{Row: 1, Col: 1}})

	g.Resize(5, 3)
	test.ExpectEquality(t, g.Size(), grid.GridSize{Cols: 5, Rows: 3})
	test.ExpectEquality(t, g.Cell(1, 2), c)

	// cursor now out of bounds and therefore hidden
	test.ExpectFailure(t, g.Cursor().Visible)
	_, ok := g.Selection()
	test.ExpectFailure(t, ok)

	g.Resize(20, 10)
	test.ExpectEquality(t, g.Cell(1, 2), c)
	test.ExpectEquality(t, g.Cell(4, 9), grid.Blank)

	// negative dimensions are treated as zero
	g.Resize(-1, 10)
	test.ExpectEquality(t, g.Size(), grid.GridSize{Cols: 0, Rows: 10})
}

func TestSelection(t *testing.T) {
	s := grid.Selection{
		Start: grid.Point{Row: 2, Col: 5},
		End:   grid.Point{Row: 1, Col: 3},
	}

	test.ExpectEquality(t, s.Normalized().Start, grid.Point{Row: 1, Col: 3})
	test.ExpectSuccess(t, s.Contains(1, 3))
	test.ExpectSuccess(t, s.Contains(1, 79))
	test.ExpectSuccess(t, s.Contains(2, 0))
	test.ExpectSuccess(t, s.Contains(2, 5))
	test.ExpectFailure(t, s.Contains(2, 6))
	test.ExpectFailure(t, s.Contains(1, 2))
}

func TestCellIsBlank(t *testing.T) {
	test.ExpectSuccess(t, grid.Blank.IsBlank())
	test.ExpectSuccess(t, grid.Cell{Char: ' '}.IsBlank())
	test.ExpectFailure(t, grid.Cell{Char: 'A'}.IsBlank())
	test.ExpectFailure(t, grid.Cell{Attr: grid.AttrInverse}.IsBlank())
	test.ExpectEquality(t, grid.RGB(255, 176, 0).String(), "#ffb000")
}
