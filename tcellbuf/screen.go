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
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/grid"
	"github.com/jetsetilly/crtterm/gui/connector"
)

const logTag = "tcellbuf"

// Sentinal error patterns.
const (
	InitError   = "tcellbuf: %v"
	InvalidSize = "tcellbuf: invalid size (%dx%d)"
)

// Screen implements tcell.Screen through the embedded SimulationScreen. The
// published state of the screen is available through the Buffer type
// returned by the Buffer() function.
type Screen struct {
	tcell.SimulationScreen

	post func(func())
	buf  *Buffer

	beepLock sync.Mutex
	onBeep   func()
}

// NewScreen is the preferred method of initialisation for the Screen type.
//
// The post function is used to run publication on the goroutine of the
// render loop. If post is nil then publication happens immediately on the
// goroutine that calls Show() or Sync().
func NewScreen(cols, rows int, post func(func())) (*Screen, error) {
	if cols <= 0 || rows <= 0 {
		return nil, curated.Errorf(InvalidSize, cols, rows)
	}

	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		return nil, curated.Errorf(InitError, err)
	}
	sim.SetSize(cols, rows)

	if post == nil {
		post = func(f func()) { f() }
	}

	scr := &Screen{
		SimulationScreen: sim,
		post:             post,
	}

	scr.buf = &Buffer{
		sim:      sim,
		snapshot: grid.NewGrid(cols, rows),
		subs:     make(map[int]func(connector.Change)),
	}

	return scr, nil
}

// Buffer returns the published state of the screen.
func (scr *Screen) Buffer() *Buffer {
	return scr.buf
}

// Show implements the tcell.Screen interface.
func (scr *Screen) Show() {
	scr.SimulationScreen.Show()
	scr.post(func() { scr.buf.publish(false) })
}

// Sync implements the tcell.Screen interface.
func (scr *Screen) Sync() {
	scr.SimulationScreen.Sync()
	scr.post(func() { scr.buf.publish(true) })
}

// Beep implements the tcell.Screen interface. The bell is forwarded to the
// function registered with SetBeep().
func (scr *Screen) Beep() error {
	scr.beepLock.Lock()
	f := scr.onBeep
	scr.beepLock.Unlock()

	if f != nil {
		scr.post(f)
	}
	return nil
}

// SetBeep registers the function to call when the tcell program rings the
// bell. The function is run with the post function.
func (scr *Screen) SetBeep(f func()) {
	scr.beepLock.Lock()
	defer scr.beepLock.Unlock()
	scr.onBeep = f
}
