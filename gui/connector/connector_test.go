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

package connector_test

import (
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/rasterizer"
	"github.com/jetsetilly/crtterm/test"
)

// buffer is a test double for an external terminal emulation buffer
type buffer struct {
	g       *grid.Grid
	subs    map[int]func(connector.Change)
	nextSub int
	resizes []grid.GridSize
}

func newBuffer(cols, rows int) *buffer {
	return &buffer{
		g:    grid.NewGrid(cols, rows),
		subs: make(map[int]func(connector.Change)),
	}
}

func (b *buffer) Size() grid.GridSize               { return b.g.Size() }
func (b *buffer) Cell(row, col int) grid.Cell       { return b.g.Cell(row, col) }
func (b *buffer) Cursor() grid.Cursor               { return b.g.Cursor() }
func (b *buffer) Selection() (grid.Selection, bool) { return b.g.Selection() }

func (b *buffer) Subscribe(f func(connector.Change)) func() {
	id := b.nextSub
	b.nextSub++
	b.subs[id] = f
	return func() { delete(b.subs, id) }
}

func (b *buffer) Resize(cols, rows int) error {
	b.g.Resize(cols, rows)
	b.resizes = append(b.resizes, grid.GridSize{Cols: cols, Rows: rows})
	return nil
}

func (b *buffer) SetSelection(sel *grid.Selection) {
	if sel == nil {
		b.g.ClearSelection()
	} else {
		b.g.SetSelection(*sel)
	}
	b.notify(connector.Change{Selection: true})
}

func (b *buffer) notify(ch connector.Change) {
	for _, f := range b.subs {
		f(ch)
	}
}

func (b *buffer) set(row, col int, c grid.Cell) {
	b.g.SetCell(row, col, c)
	b.notify(connector.Change{Rows: []int{row}})
}

// target records the updates forwarded by the connector. cells are 10x10
// pixels
type target struct {
	size      grid.GridSize
	listeners map[int]func(grid.GridSize)
	nextID    int

	updates        []grid.CellUpdate
	batches        int
	cursor         grid.Cursor
	cursorCalls    int
	selection      *grid.Selection
	selectionCalls int
}

func newTarget(cols, rows int) *target {
	return &target{
		size:      grid.GridSize{Cols: cols, Rows: rows},
		listeners: make(map[int]func(grid.GridSize)),
	}
}

func (t *target) GridSize() grid.GridSize { return t.size }

func (t *target) OnGridSizeChange(f func(grid.GridSize)) func() {
	id := t.nextID
	t.nextID++
	t.listeners[id] = f
	return func() { delete(t.listeners, id) }
}

func (t *target) UpdateCells(batch []grid.CellUpdate) int {
	t.updates = append(t.updates, batch...)
	t.batches++
	return len(batch)
}

func (t *target) UpdateCursor(c grid.Cursor) {
	t.cursor = c
	t.cursorCalls++
}

func (t *target) UpdateSelection(sel *grid.Selection) {
	t.selection = sel
	t.selectionCalls++
}

func (t *target) CellAt(x, y int) (grid.Point, bool) {
	p := grid.Point{Row: y / 10, Col: x / 10}
	return p, x >= 0 && y >= 0 && p.Row < t.size.Rows && p.Col < t.size.Cols
}

func (t *target) resize(cols, rows int) {
	t.size = grid.GridSize{Cols: cols, Rows: rows}
	for _, f := range t.listeners {
		f(t.size)
	}
}

func (t *target) reset() {
	t.updates = nil
	t.batches = 0
	t.cursorCalls = 0
	t.selectionCalls = 0
}

// pointer is a test double for a PointerSource
type pointer struct {
	handler func(connector.PointerEvent)
}

func (p *pointer) OnPointer(f func(connector.PointerEvent)) func() {
	p.handler = f
	return func() { p.handler = nil }
}

func (p *pointer) event(kind connector.PointerKind, x, y int) {
	if p.handler != nil {
		p.handler(connector.PointerEvent{Kind: kind, X: x, Y: y})
	}
}

func TestInitialSync(t *testing.T) {
	buf := newBuffer(10, 5)
	buf.g.SetCell(1, 1, grid.Cell{Char: 'A'})
	buf.g.SetCursor(grid.Cursor{Row: 2, Col: 3, Visible: true})

	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()

	// no resize necessary
	test.ExpectEquality(t, len(buf.resizes), 0)

	test.ExpectEquality(t, len(tgt.updates), 50)
	test.ExpectEquality(t, tgt.updates[11].Cell.Char, 'A')
	test.ExpectEquality(t, tgt.cursor, grid.Cursor{Row: 2, Col: 3, Visible: true})
	test.ExpectEquality(t, tgt.cursorCalls, 1)
	test.ExpectSuccess(t, tgt.selection == nil)
}

func TestInitialResize(t *testing.T) {
	buf := newBuffer(80, 24)
	tgt := newTarget(40, 10)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()

	test.DemandEquality(t, len(buf.resizes), 1)
	test.ExpectEquality(t, buf.resizes[0], grid.GridSize{Cols: 40, Rows: 10})
	test.ExpectEquality(t, len(tgt.updates), 400)
}

func TestIncremental(t *testing.T) {
	buf := newBuffer(10, 5)
	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()
	tgt.reset()

	buf.set(2, 3, grid.Cell{Char: 'x'})
	test.DemandEquality(t, len(tgt.updates), 1)
	test.ExpectEquality(t, tgt.updates[0], grid.CellUpdate{Row: 2, Col: 3, Cell: grid.Cell{Char: 'x'}})
	test.ExpectEquality(t, con.Mirror().Cell(2, 3).Char, 'x')

	// a notification without a change forwards nothing
	tgt.reset()
	buf.set(2, 3, grid.Cell{Char: 'x'})
	test.ExpectEquality(t, tgt.batches, 0)

	// rows outside of the grid are ignored
	buf.notify(connector.Change{Rows: []int{-1, 99}})
	test.ExpectEquality(t, tgt.batches, 0)

	// last writer wins
	buf.g.SetCell(0, 0, grid.Cell{Char: '1'})
	buf.g.SetCell(0, 0, grid.Cell{Char: '2'})
	buf.notify(connector.Change{Rows: []int{0, 0}})
	test.DemandEquality(t, len(tgt.updates), 1)
	test.ExpectEquality(t, tgt.updates[0].Cell.Char, '2')

	// full change reads everything
	tgt.reset()
	buf.notify(connector.Change{Full: true})
	test.ExpectEquality(t, len(tgt.updates), 50)
}

func TestCursor(t *testing.T) {
	buf := newBuffer(10, 5)
	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()
	tgt.reset()

	buf.g.SetCursor(grid.Cursor{Row: 1, Col: 1, Visible: true})
	buf.notify(connector.Change{Cursor: true})
	test.ExpectEquality(t, tgt.cursorCalls, 1)
	test.ExpectEquality(t, tgt.cursor, grid.Cursor{Row: 1, Col: 1, Visible: true})

	// unchanged
	buf.notify(connector.Change{Cursor: true})
	test.ExpectEquality(t, tgt.cursorCalls, 1)

	// cursor changes are not forwarded unless flagged
	buf.g.SetCursor(grid.Cursor{Row: 2, Col: 1, Visible: true})
	buf.notify(connector.Change{Rows: []int{2}})
	test.ExpectEquality(t, tgt.cursorCalls, 1)
}

func TestResizeNegotiation(t *testing.T) {
	buf := newBuffer(10, 5)
	buf.g.SetCell(0, 0, grid.Cell{Char: 'A'})
	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()
	tgt.reset()

	tgt.resize(20, 8)
	test.DemandEquality(t, len(buf.resizes), 1)
	test.ExpectEquality(t, buf.resizes[0], grid.GridSize{Cols: 20, Rows: 8})
	test.DemandEquality(t, len(tgt.updates), 160)

	// content survives the resize because the buffer preserved it
	test.ExpectEquality(t, tgt.updates[0].Cell.Char, 'A')

	// the mirror is the new size so incremental updates work in the new area
	tgt.reset()
	buf.set(7, 19, grid.Cell{Char: 'z'})
	test.DemandEquality(t, len(tgt.updates), 1)
	test.ExpectEquality(t, tgt.updates[0].Col, 19)
}

func TestMouseSelection(t *testing.T) {
	buf := newBuffer(10, 5)
	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)
	defer con.Dispose()

	var ptr pointer
	test.DemandSuccess(t, con.SetupMouseSelection(&ptr))

	ptr.event(connector.PointerPress, 15, 5)
	ptr.event(connector.PointerDrag, 25, 15)
	ptr.event(connector.PointerDrag, 35, 25)
	ptr.event(connector.PointerRelease, 35, 25)

	expected := grid.Selection{
		Start:  grid.Point{Row: 0, Col: 1},
		End:    grid.Point{Row: 2, Col: 3},
		Anchor: grid.Point{Row: 0, Col: 1},
	}

	sel, ok := buf.Selection()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, sel, expected)
	test.DemandSuccess(t, tgt.selection != nil)
	test.ExpectEquality(t, *tgt.selection, expected)

	// dragging outside of the grid is ignored
	ptr.event(connector.PointerPress, 5, 5)
	ptr.event(connector.PointerDrag, 500, 500)
	test.ExpectSuccess(t, tgt.selection == nil)

	// a click clears the selection
	ptr.event(connector.PointerPress, 15, 5)
	ptr.event(connector.PointerDrag, 45, 5)
	ptr.event(connector.PointerRelease, 45, 5)
	test.ExpectSuccess(t, tgt.selection != nil)
	ptr.event(connector.PointerPress, 15, 5)
	ptr.event(connector.PointerRelease, 15, 5)
	test.ExpectSuccess(t, tgt.selection == nil)
}

func TestNoSelection(t *testing.T) {
	// hide the SetSelection() method
	buf := struct{ connector.Buffer }{newBuffer(10, 5)}

	con, err := connector.New(buf, newTarget(10, 5))
	test.DemandSuccess(t, err)
	defer con.Dispose()

	err = con.SetupMouseSelection(&pointer{})
	test.ExpectSuccess(t, curated.Is(err, connector.NoSelection))
}

func TestDispose(t *testing.T) {
	buf := newBuffer(10, 5)
	tgt := newTarget(10, 5)
	con, err := connector.New(buf, tgt)
	test.DemandSuccess(t, err)

	var ptr pointer
	test.DemandSuccess(t, con.SetupMouseSelection(&ptr))

	con.Dispose()
	con.Dispose()

	test.ExpectEquality(t, len(buf.subs), 0)
	test.ExpectEquality(t, len(tgt.listeners), 0)
	test.ExpectSuccess(t, ptr.handler == nil)

	tgt.reset()
	buf.set(0, 0, grid.Cell{Char: 'A'})
	tgt.resize(20, 20)
	test.ExpectEquality(t, tgt.batches, 0)
	test.ExpectEquality(t, len(buf.resizes), 0)

	err = con.SetupMouseSelection(&ptr)
	test.ExpectSuccess(t, curated.Is(err, connector.Disposed))
}

func TestWithRasterizer(t *testing.T) {
	face, err := fonts.LoadFace(fonts.FaceBasic, 0, 1)
	test.DemandSuccess(t, err)
	dev := framebuffer.NewDevice(0)
	atlas, err := fonts.NewAtlas(dev, face)
	test.DemandSuccess(t, err)

	rz := rasterizer.NewRasterizer(dev, atlas, crt.Flat())
	defer rz.Dispose()
	test.DemandSuccess(t, rz.UpdateGridSize(10, 5))

	buf := newBuffer(80, 24)
	con, err := connector.New(buf, rz)
	test.DemandSuccess(t, err)
	defer con.Dispose()

	test.ExpectEquality(t, buf.Size(), grid.GridSize{Cols: 10, Rows: 5})

	buf.set(0, 0, grid.Cell{Bg: grid.RGB(255, 0, 0)})
	tex, err := rz.RenderStaticPass()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tex.At(3, 3), framebuffer.Opaque(1, 0, 0))

	// a change in viewport renegotiates the buffer size
	test.DemandSuccess(t, rz.SetViewport(20*7, 6*13))
	test.ExpectEquality(t, buf.Size(), grid.GridSize{Cols: 20, Rows: 6})

	tex, err = rz.RenderStaticPass()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, tex.Width, 20*7)
	test.ExpectEquality(t, tex.At(3, 3), framebuffer.Opaque(1, 0, 0))
}
