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

package demo

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/version"
	"github.com/mattn/go-runewidth"
)

// how often the clock in the status line is updated
const tickInterval = time.Second

var spinner = []rune("|/-\\")

const statusHelp = " F10 prefs  F11 fullscreen  ^G bell  ^L clear  ^Q quit "

// Demo draws into a tcell.Screen. It does not own the screen and never calls
// Init() or Fini().
type Demo struct {
	scr tcell.Screen

	// typed text. the last line is the line being edited
	lines []string

	ticks int
}

// New is the preferred method of initialisation for the Demo type.
func New(scr tcell.Screen) *Demo {
	return &Demo{
		scr:   scr,
		lines: []string{""},
	}
}

// Lines returns the typed text.
func (d *Demo) Lines() []string {
	return d.lines
}

// Run draws the screen and handles events until Ctrl-Q is pressed or the
// screen is finalised.
func (d *Demo) Run() {
	done := make(chan struct{})
	defer close(done)

	go func() {
		tck := time.NewTicker(tickInterval)
		defer tck.Stop()
		for {
			select {
			case <-tck.C:
				_ = d.scr.PostEvent(tcell.NewEventInterrupt(nil))
			case <-done:
				return
			}
		}
	}()

	d.Draw()

	for {
		ev := d.scr.PollEvent()
		if ev == nil {
			return
		}
		if !d.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent updates the demo in response to the event and redraws the
// screen. Returns false if the demo should end.
func (d *Demo) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlQ, tcell.KeyCtrlC:
			return false
		case tcell.KeyCtrlG:
			_ = d.scr.Beep()
			return true
		case tcell.KeyCtrlL:
			d.lines = []string{""}
		case tcell.KeyEnter:
			d.lines = append(d.lines, "")
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			last := []rune(d.lines[len(d.lines)-1])
			if len(last) > 0 {
				d.lines[len(d.lines)-1] = string(last[:len(last)-1])
			}
		case tcell.KeyRune:
			d.lines[len(d.lines)-1] += string(ev.Rune())
		default:
			return true
		}

	case *tcell.EventInterrupt:
		d.ticks++

	case *tcell.EventResize:
		d.scr.Sync()
	}

	d.Draw()
	return true
}

// drawText draws the string and returns the column following the last
// character. drawing stops at the maximum column.
func (d *Demo) drawText(x, y, maxX int, style tcell.Style, s string) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		d.scr.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func (d *Demo) fill(y, fromX, toX int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		d.scr.SetContent(x, y, ' ', nil, style)
	}
}

// Draw the entire screen and show it.
func (d *Demo) Draw() {
	d.scr.Clear()

	w, h := d.scr.Size()
	if w <= 0 || h <= 0 {
		return
	}

	// title bar
	title := tcell.StyleDefault.Reverse(true).Bold(true)
	d.fill(0, 0, w, title)
	v, _, _ := version.Version()
	d.drawText(1, 0, w, title, fmt.Sprintf("%s %s", version.ApplicationName, v))

	y := 2

	// the sixteen palette colours and an RGB gradient
	x := d.drawText(1, y, w, tcell.StyleDefault, "colours ")
	for i := range 16 {
		d.scr.SetContent(x+i*2, y, ' ', nil, tcell.StyleDefault.Background(tcell.PaletteColor(i)))
		d.scr.SetContent(x+i*2+1, y, ' ', nil, tcell.StyleDefault.Background(tcell.PaletteColor(i)))
	}
	y++

	x = d.drawText(1, y, w, tcell.StyleDefault, "gradient ")
	for i := x; i < w-1; i++ {
		t := float64(i-x) / float64(max(1, w-1-x))
		c := tcell.NewRGBColor(int32(255*(1-t)), int32(255*t), int32(128))
		d.scr.SetContent(i, y, ' ', nil, tcell.StyleDefault.Background(c))
	}
	y += 2

	// attributes
	x = d.drawText(1, y, w, tcell.StyleDefault, "attributes ")
	x = d.drawText(x, y, w, tcell.StyleDefault.Bold(true), "bold") + 1
	x = d.drawText(x, y, w, tcell.StyleDefault.Dim(true), "dim") + 1
	x = d.drawText(x, y, w, tcell.StyleDefault.Underline(true), "underline") + 1
	d.drawText(x, y, w, tcell.StyleDefault.Reverse(true), "reverse")
	y++

	d.drawText(1, y, w, tcell.StyleDefault, "wide ")
	d.drawText(6, y, w, tcell.StyleDefault.Foreground(tcell.ColorYellow), "日本語のテキスト ╔═╗ ░▒▓█")
	y += 2

	// text area
	d.drawBox(0, y, w-1, h-2)
	d.drawLines(1, y+1, w-1, h-2)

	// status line
	status := tcell.StyleDefault.Reverse(true)
	d.fill(h-1, 0, w, status)
	d.drawText(0, h-1, w, status, statusHelp)
	clock := fmt.Sprintf(" %c %02d:%02d ", spinner[d.ticks%len(spinner)], d.ticks/60, d.ticks%60)
	d.drawText(max(0, w-runewidth.StringWidth(clock)), h-1, w, status, clock)

	d.scr.Show()
}

func (d *Demo) drawBox(x0, y0, x1, y1 int) {
	if x1-x0 < 2 || y1-y0 < 2 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for x := x0 + 1; x < x1; x++ {
		d.scr.SetContent(x, y0, tcell.RuneHLine, nil, style)
		d.scr.SetContent(x, y1, tcell.RuneHLine, nil, style)
	}
	for y := y0 + 1; y < y1; y++ {
		d.scr.SetContent(x0, y, tcell.RuneVLine, nil, style)
		d.scr.SetContent(x1, y, tcell.RuneVLine, nil, style)
	}
	d.scr.SetContent(x0, y0, tcell.RuneULCorner, nil, style)
	d.scr.SetContent(x1, y0, tcell.RuneURCorner, nil, style)
	d.scr.SetContent(x0, y1, tcell.RuneLLCorner, nil, style)
	d.scr.SetContent(x1, y1, tcell.RuneLRCorner, nil, style)
}

// drawLines draws as many of the most recent lines as fit in the area inside
// the box and places the cursor after the last character.
func (d *Demo) drawLines(x0, y0, x1, y1 int) {
	rows := y1 - y0
	if rows <= 0 || x1-x0 <= 1 {
		d.scr.HideCursor()
		return
	}

	first := max(0, len(d.lines)-rows)
	y := y0
	var cx int
	for _, l := range d.lines[first:] {
		cx = d.drawText(x0, y, x1, tcell.StyleDefault, l)
		y++
	}

	d.scr.ShowCursor(min(cx, x1-1), y-1)
}
