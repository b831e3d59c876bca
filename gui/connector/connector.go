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
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/logger"
)

const logTag = "connector"

// Sentinal error patterns.
const (
	Disposed    = "connector: disposed"
	NoSelection = "connector: buffer does not accept selections"
)

// Connector bridges a Buffer and a Target.
type Connector struct {
	buf    Buffer
	target Target

	// the state last forwarded to the target
	mirror    *grid.Grid
	selection *grid.Selection

	unsubscribe func()
	removeSize  func()
	removeMouse func()

	// mouse selection gesture
	selecting bool
	dragged   bool
	anchor    grid.Point

	disposed bool
}

// New is the preferred method of initialisation for the Connector type. If the
// target grid size is known then the buffer is resized to match. The buffer
// is then synchronised with the target.
func New(buf Buffer, target Target) (*Connector, error) {
	sz := target.GridSize()

	con := &Connector{
		buf:    buf,
		target: target,
		mirror: grid.NewGrid(sz.Cols, sz.Rows),
	}

	con.unsubscribe = buf.Subscribe(con.changed)
	con.removeSize = target.OnGridSizeChange(con.resized)

	if sz.Valid() && buf.Size() != sz {
		if err := buf.Resize(sz.Cols, sz.Rows); err != nil {
			con.Dispose()
			return nil, curated.Errorf("connector: %v", err)
		}
	}

	con.Sync()

	return con, nil
}

// Sync reads the entire buffer and forwards it to the target. Cells outside of
// the buffer but inside the target grid are forwarded as blank cells.
func (con *Connector) Sync() {
	if con.disposed {
		return
	}

	sz := con.mirror.Size()
	bufSz := con.buf.Size()

	batch := make([]grid.CellUpdate, 0, sz.Cols*sz.Rows)
	for row := range sz.Rows {
		for col := range sz.Cols {
			c := grid.Blank
			if row < bufSz.Rows && col < bufSz.Cols {
				c = con.buf.Cell(row, col)
			}
			con.mirror.SetCell(row, col, c)
			batch = append(batch, grid.CellUpdate{Row: row, Col: col, Cell: c})
		}
	}
	con.target.UpdateCells(batch)

	con.syncCursor(true)
	con.syncSelection(true)
}

func (con *Connector) syncCursor(force bool) {
	c := con.buf.Cursor()
	prev := con.mirror.Cursor()
	con.mirror.SetCursor(c)

	// the mirror hides a cursor that is out of bounds
	c = con.mirror.Cursor()
	if force || c != prev {
		con.target.UpdateCursor(c)
	}
}

func (con *Connector) syncSelection(force bool) {
	var sel *grid.Selection
	if s, ok := con.buf.Selection(); ok {
		sel = &s
	}

	if !force {
		switch {
		case sel == nil && con.selection == nil:
			return
		case sel != nil && con.selection != nil && *sel == *con.selection:
			return
		}
	}

	con.selection = sel
	con.target.UpdateSelection(sel)
}

// changed is the subscription function for the buffer
func (con *Connector) changed(ch Change) {
	if con.disposed {
		return
	}

	if ch.Full {
		con.Sync()
		return
	}

	sz := con.mirror.Size()
	bufSz := con.buf.Size()
	cols := min(sz.Cols, bufSz.Cols)

	var batch []grid.CellUpdate
	for _, row := range ch.Rows {
		if row < 0 || row >= sz.Rows || row >= bufSz.Rows {
			continue
		}
		for col := range cols {
			c := con.buf.Cell(row, col)
			if c == con.mirror.Cell(row, col) {
				continue
			}
			con.mirror.SetCell(row, col, c)
			batch = append(batch, grid.CellUpdate{Row: row, Col: col, Cell: c})
		}
	}

	if len(batch) > 0 {
		con.target.UpdateCells(batch)
	}

	if ch.Cursor {
		con.syncCursor(false)
	}
	if ch.Selection {
		con.syncSelection(false)
	}
}

// resized is the grid size listener for the target
func (con *Connector) resized(sz grid.GridSize) {
	if con.disposed {
		return
	}

	con.mirror.Resize(sz.Cols, sz.Rows)
	con.selection = nil

	if err := con.buf.Resize(sz.Cols, sz.Rows); err != nil {
		logger.Logf(logger.Allow, logTag, "buffer resize failed: %v", err)
	}

	con.Sync()
}

// SetupMouseSelection maps pointer gestures on the rendered surface to
// selections in the buffer. Any previous pointer source is released.
func (con *Connector) SetupMouseSelection(src PointerSource) error {
	if con.disposed {
		return curated.Errorf(Disposed)
	}

	setter, ok := con.buf.(SelectionSetter)
	if !ok {
		return curated.Errorf(NoSelection)
	}

	if con.removeMouse != nil {
		con.removeMouse()
	}

	con.removeMouse = src.OnPointer(func(ev PointerEvent) {
		if con.disposed {
			return
		}
		con.pointer(setter, ev)
	})

	return nil
}

func (con *Connector) pointer(setter SelectionSetter, ev PointerEvent) {
	p, ok := con.target.CellAt(ev.X, ev.Y)

	switch ev.Kind {
	case PointerPress:
		if !ok {
			return
		}
		con.selecting = true
		con.dragged = false
		con.anchor = p
		setter.SetSelection(nil)

	case PointerDrag:
		if !con.selecting || !ok {
			return
		}
		con.dragged = true
		setter.SetSelection(&grid.Selection{Start: con.anchor, End: p, Anchor: con.anchor})

	case PointerRelease:
		if !con.selecting {
			return
		}
		con.selecting = false

		// a click without a drag leaves the selection clear
		if !con.dragged {
			return
		}
		if ok {
			setter.SetSelection(&grid.Selection{Start: con.anchor, End: p, Anchor: con.anchor})
		}
	}
}

// Dispose releases all subscriptions. Safe to call more than once.
func (con *Connector) Dispose() {
	if con.disposed {
		return
	}
	con.disposed = true

	if con.unsubscribe != nil {
		con.unsubscribe()
	}
	if con.removeSize != nil {
		con.removeSize()
	}
	if con.removeMouse != nil {
		con.removeMouse()
	}
}

// Mirror returns the grid state most recently forwarded to the target. The
// returned grid must not be modified.
func (con *Connector) Mirror() *grid.Grid {
	return con.mirror
}
