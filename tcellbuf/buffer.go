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

package tcellbuf

import (
	"maps"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/jetsetilly/crtterm/logger"
)

// Buffer implements the connector.Buffer and connector.SelectionSetter
// interfaces. Except for publish(), which is called through the post
// function, the Buffer must only be used from the goroutine of the render
// loop.
type Buffer struct {
	sim tcell.SimulationScreen

	// the most recently published state
	snapshot  *grid.Grid
	selection *grid.Selection
	subs      map[int]func(connector.Change)
	nextSub   int
}

func convertColor(c tcell.Color) grid.Color {
	if c == tcell.ColorDefault || !c.Valid() {
		return grid.DefaultColor
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return grid.DefaultColor
	}
	return grid.RGB(uint8(r), uint8(g), uint8(b))
}

func convertStyle(style tcell.Style) (grid.Color, grid.Color, grid.Attr) {
	fg, bg, attrs := style.Decompose()

	var a grid.Attr
	if attrs&tcell.AttrBold != 0 {
		a |= grid.AttrBold
	}
	if attrs&tcell.AttrDim != 0 {
		a |= grid.AttrDim
	}
	if attrs&tcell.AttrUnderline != 0 {
		a |= grid.AttrUnderline
	}
	if attrs&tcell.AttrReverse != 0 {
		a |= grid.AttrInverse
	}

	return convertColor(fg), convertColor(bg), a
}

// read the simulation screen into a grid. combining characters are not
// supported and are dropped
func (buf *Buffer) read() *grid.Grid {
	w, h := buf.sim.Size()
	g := grid.NewGrid(w, h)

	for y := range h {
		continuation := false
		for x := range w {
			mainc, _, style, width := buf.sim.GetContent(x, y) //nolint:staticcheck

			fg, bg, attr := convertStyle(style)
			c := grid.Cell{Char: mainc, Fg: fg, Bg: bg, Attr: attr}

			// the second half of a wide character and spaces are empty
			if continuation || c.Char == ' ' {
				c.Char = 0
			}
			continuation = width > 1 && !continuation

			g.SetCell(y, x, c)
		}
	}

	cx, cy, visible := buf.sim.GetCursor()
	g.SetCursor(grid.Cursor{Row: cy, Col: cx, Visible: visible})

	return g
}

// publish compares the simulation screen with the snapshot and notifies
// subscribers of any differences
func (buf *Buffer) publish(full bool) {
	g := buf.read()

	var ch connector.Change

	if full || g.Size() != buf.snapshot.Size() {
		ch.Full = true
	} else {
		sz := g.Size()
		for row := range sz.Rows {
			if !slices.Equal(g.Row(row), buf.snapshot.Row(row)) {
				ch.Rows = append(ch.Rows, row)
			}
		}
		ch.Cursor = g.Cursor() != buf.snapshot.Cursor()
	}

	buf.snapshot = g

	if !ch.Full && len(ch.Rows) == 0 && !ch.Cursor {
		return
	}

	buf.notify(ch)
}

func (buf *Buffer) notify(ch connector.Change) {
	for _, id := range slices.Sorted(maps.Keys(buf.subs)) {
		if f, ok := buf.subs[id]; ok {
			f(ch)
		}
	}
}

// Size returns the size of the published snapshot.
func (buf *Buffer) Size() grid.GridSize {
	return buf.snapshot.Size()
}

// Cell returns the cell from the published snapshot.
func (buf *Buffer) Cell(row, col int) grid.Cell {
	return buf.snapshot.Cell(row, col)
}

// Cursor returns the cursor from the published snapshot.
func (buf *Buffer) Cursor() grid.Cursor {
	return buf.snapshot.Cursor()
}

// Selection returns the current selection.
func (buf *Buffer) Selection() (grid.Selection, bool) {
	if buf.selection == nil {
		return grid.Selection{}, false
	}
	return *buf.selection, true
}

// SetSelection implements the connector.SelectionSetter interface.
func (buf *Buffer) SetSelection(sel *grid.Selection) {
	if sel == nil {
		buf.selection = nil
	} else {
		s := *sel
		buf.selection = &s
	}
	buf.notify(connector.Change{Selection: true})
}

// SelectedText returns the text in the current selection. Rows are separated
// by newlines and trailing spaces are removed from each row.
func (buf *Buffer) SelectedText() string {
	if buf.selection == nil {
		return ""
	}

	sel := buf.selection.Normalized()
	sz := buf.snapshot.Size()

	var text []rune
	for row := sel.Start.Row; row <= sel.End.Row && row < sz.Rows; row++ {
		from := 0
		to := sz.Cols - 1
		if row == sel.Start.Row {
			from = sel.Start.Col
		}
		if row == sel.End.Row {
			to = min(sel.End.Col, to)
		}

		var line []rune
		for col := from; col <= to; col++ {
			c := buf.snapshot.Cell(row, col)
			if c.Char == 0 {
				line = append(line, ' ')
			} else {
				line = append(line, c.Char)
			}
		}
		for len(line) > 0 && line[len(line)-1] == ' ' {
			line = line[:len(line)-1]
		}

		if row > sel.Start.Row {
			text = append(text, '\n')
		}
		text = append(text, line...)
	}

	return string(text)
}

// Subscribe implements the connector.Buffer interface.
func (buf *Buffer) Subscribe(f func(connector.Change)) func() {
	id := buf.nextSub
	buf.nextSub++
	buf.subs[id] = f
	return func() {
		delete(buf.subs, id)
	}
}

// Resize implements the connector.Buffer interface. The tcell program
// receives a resize event.
func (buf *Buffer) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return curated.Errorf(InvalidSize, cols, rows)
	}

	buf.sim.SetSize(cols, rows)
	buf.selection = nil

	if err := buf.sim.PostEvent(tcell.NewEventResize(cols, rows)); err != nil {
		logger.Logf(logger.Allow, logTag, "resize event not delivered: %v", err)
	}

	// the connector performs a full sync after a resize so the snapshot
	// is updated without notifying subscribers
	buf.snapshot = buf.read()

	return nil
}
