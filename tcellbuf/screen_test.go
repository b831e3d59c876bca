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

package tcellbuf_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/jetsetilly/crtterm/tcellbuf"
	"github.com/jetsetilly/crtterm/test"
)

func newScreen(t *testing.T, cols, rows int) (*tcellbuf.Screen, *[]connector.Change) {
	t.Helper()
	scr, err := tcellbuf.NewScreen(cols, rows, nil)
	test.DemandSuccess(t, err)
	t.Cleanup(scr.Fini)

	var changes []connector.Change
	scr.Buffer().Subscribe(func(ch connector.Change) {
		changes = append(changes, ch)
	})
	return scr, &changes
}

func putString(scr tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		scr.SetContent(x, y, r, nil, style)
		x++
	}
}

func TestInvalidSize(t *testing.T) {
	_, err := tcellbuf.NewScreen(0, 24, nil)
	test.ExpectSuccess(t, curated.Is(err, tcellbuf.InvalidSize))
}

func TestPublish(t *testing.T) {
	scr, changes := newScreen(t, 10, 3)
	buf := scr.Buffer()
	test.ExpectEquality(t, buf.Size(), grid.GridSize{Cols: 10, Rows: 3})

	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Bold(true)
	scr.SetContent(0, 1, 'A', nil, style)

	// nothing is published until Show()
	test.ExpectEquality(t, len(*changes), 0)
	test.ExpectEquality(t, buf.Cell(1, 0).Char, rune(0))

	scr.Show()
	test.DemandEquality(t, len(*changes), 1)
	ch := (*changes)[0]
	test.DemandEquality(t, len(ch.Rows), 1)
	test.ExpectEquality(t, ch.Rows[0], 1)
	test.ExpectFailure(t, ch.Full)

	test.ExpectEquality(t, buf.Cell(1, 0), grid.Cell{
		Char: 'A',
		Fg:   grid.RGB(255, 0, 0),
		Bg:   grid.DefaultColor,
		Attr: grid.AttrBold,
	})

	// spaces are empty cells
	test.ExpectSuccess(t, buf.Cell(1, 1).IsBlank())

	// no change, no notification
	scr.Show()
	test.ExpectEquality(t, len(*changes), 1)

	// sync is always a full change
	scr.Sync()
	test.DemandEquality(t, len(*changes), 2)
	test.ExpectSuccess(t, (*changes)[1].Full)
}

func TestWideCharacter(t *testing.T) {
	scr, _ := newScreen(t, 10, 3)
	buf := scr.Buffer()

	scr.SetContent(0, 0, '世', nil, tcell.StyleDefault)
	scr.Show()

	test.ExpectEquality(t, buf.Cell(0, 0).Char, '世')
	test.ExpectEquality(t, buf.Cell(0, 1).Char, rune(0))
}

func TestPostedPublication(t *testing.T) {
	var queue []func()
	scr, err := tcellbuf.NewScreen(10, 3, func(f func()) {
		queue = append(queue, f)
	})
	test.DemandSuccess(t, err)
	defer scr.Fini()

	var n int
	scr.Buffer().Subscribe(func(connector.Change) { n++ })

	scr.SetContent(0, 0, 'x', nil, tcell.StyleDefault)
	scr.Show()
	test.ExpectEquality(t, n, 0)
	test.DemandEquality(t, len(queue), 1)

	queue[0]()
	test.ExpectEquality(t, n, 1)
	test.ExpectEquality(t, scr.Buffer().Cell(0, 0).Char, 'x')
}

func TestResize(t *testing.T) {
	scr, changes := newScreen(t, 10, 3)
	buf := scr.Buffer()

	test.DemandSuccess(t, buf.Resize(20, 5))
	test.ExpectEquality(t, buf.Size(), grid.GridSize{Cols: 20, Rows: 5})
	w, h := scr.Size()
	test.ExpectEquality(t, w, 20)
	test.ExpectEquality(t, h, 5)

	// the connector syncs after a resize so there is no notification
	test.ExpectEquality(t, len(*changes), 0)

	err := buf.Resize(-1, 5)
	test.ExpectSuccess(t, curated.Is(err, tcellbuf.InvalidSize))
}

func TestSelection(t *testing.T) {
	scr, changes := newScreen(t, 10, 3)
	buf := scr.Buffer()

	putString(scr, 0, 0, "hello", tcell.StyleDefault)
	putString(scr, 0, 1, "world", tcell.StyleDefault)
	scr.Show()
	*changes = nil

	_, ok := buf.Selection()
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, buf.SelectedText(), "")

	// selection made backwards
	buf.SetSelection(&grid.Selection{
		Start:  grid.Point{Row: 1, Col: 2},
		End:    grid.Point{Row: 0, Col: 1},
		Anchor: grid.Point{Row: 1, Col: 2},
	})
	test.DemandEquality(t, len(*changes), 1)
	test.ExpectSuccess(t, (*changes)[0].Selection)
	test.ExpectEquality(t, buf.SelectedText(), "ello\nwor")

	buf.SetSelection(nil)
	_, ok = buf.Selection()
	test.ExpectFailure(t, ok)
}

func TestBeep(t *testing.T) {
	scr, _ := newScreen(t, 10, 3)

	// no handler
	test.ExpectSuccess(t, scr.Beep())

	var n int
	scr.SetBeep(func() { n++ })
	test.ExpectSuccess(t, scr.Beep())
	test.ExpectEquality(t, n, 1)
}
