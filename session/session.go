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

package session

import (
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/burnin"
	"github.com/jetsetilly/crtterm/gui/compositor"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/driver"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/rasterizer"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/jetsetilly/crtterm/random"
	"github.com/jetsetilly/crtterm/tcellbuf"
)

const logTag = "session"

// Sentinal error patterns.
const (
	SetupError   = "session: %v"
	ViewportSize = "session: viewport (%dx%d) too small for a single cell"
)

// Host is the interface to the render loop. The Scheduler and Presenter are
// used by the frame driver. Post is used by the tcell screen to publish
// changes on the goroutine of the render loop. A nil Post function means that
// publication happens on the goroutine that calls tcell's Show() function.
type Host interface {
	driver.Scheduler
	driver.Presenter
	Post(func())
}

// Effects is an alternative implementation of the burn-in accumulation and
// the effect passes. The Reset() function discards the burn-in history.
type Effects interface {
	driver.Accumulator
	driver.Compositor
	Reset()
}

// Settings for a new Session.
type Settings struct {
	Effect crt.EffectConfig

	// the font face and size are passed to fonts.LoadFace()
	FontFace   string
	FontSize   float64
	PixelRatio float64

	// size of the viewport in pixels
	Width  int
	Height int

	// the memory budget for textures. zero is unlimited
	TextureBudget int64

	// noise effects are identical between runs
	ZeroSeed bool

	// if Effects is nil then the effects are applied by the burnin and
	// compositor packages
	Effects Effects
}

// Session is a complete rendering pipeline attached to a tcell screen.
type Session struct {
	dev        *framebuffer.Device
	pixelRatio float64
	cfg        crt.EffectConfig

	// Accumulator and Compositor are nil if the Effects field of the Settings
	// was not nil
	Rasterizer  *rasterizer.Rasterizer
	Accumulator *burnin.Accumulator
	Compositor  *compositor.Compositor
	Effects     Effects

	Screen    *tcellbuf.Screen
	Connector *connector.Connector
	Driver    *driver.Driver
}

func newAtlas(dev *framebuffer.Device, name string, size float64, pixelRatio float64) (*fonts.Atlas, error) {
	face, err := fonts.LoadFace(name, size, pixelRatio)
	if err != nil {
		return nil, err
	}
	return fonts.NewAtlas(dev, face)
}

// NewSession is the preferred method of initialisation for the Session type.
// The frame driver is not started.
func NewSession(host Host, set Settings) (*Session, error) {
	ses := &Session{
		dev:        framebuffer.NewDevice(set.TextureBudget),
		pixelRatio: set.PixelRatio,
		cfg:        set.Effect,
	}

	// the atlas is owned by the rasterizer from this point on
	atlas, err := newAtlas(ses.dev, set.FontFace, set.FontSize, set.PixelRatio)
	if err != nil {
		return nil, curated.Errorf(SetupError, err)
	}

	ses.Rasterizer = rasterizer.NewRasterizer(ses.dev, atlas, set.Effect)
	if err := ses.Rasterizer.SetViewport(set.Width, set.Height); err != nil {
		ses.Dispose()
		return nil, curated.Errorf(SetupError, err)
	}

	sz := ses.Rasterizer.GridSize()
	if !sz.Valid() {
		ses.Dispose()
		return nil, curated.Errorf(ViewportSize, set.Width, set.Height)
	}

	var acc driver.Accumulator
	var cmp driver.Compositor

	if set.Effects != nil {
		ses.Effects = set.Effects
		acc = set.Effects
		cmp = set.Effects
	} else {
		ses.Accumulator = burnin.NewAccumulator(ses.dev)
		rnd := random.NewRandom()
		rnd.ZeroSeed = set.ZeroSeed
		ses.Compositor = compositor.NewCompositor(ses.dev, rnd)
		acc = ses.Accumulator
		cmp = ses.Compositor
	}

	ses.Screen, err = tcellbuf.NewScreen(sz.Cols, sz.Rows, host.Post)
	if err != nil {
		ses.Dispose()
		return nil, curated.Errorf(SetupError, err)
	}

	ses.Connector, err = connector.New(ses.Screen.Buffer(), ses.Rasterizer)
	if err != nil {
		ses.Dispose()
		return nil, curated.Errorf(SetupError, err)
	}

	ses.Driver = driver.NewDriver(ses.Rasterizer, acc, cmp, host, host, set.Effect)
	ses.Driver.OnError(func(err error) {
		logger.Log(logger.Allow, logTag, err)
	})

	logger.Logf(logger.Allow, logTag, "grid is %dx%d cells", sz.Cols, sz.Rows)

	return ses, nil
}

// SetConfig replaces the effect configuration. The new configuration is used
// from the next frame. Turning burn-in off discards the burn-in history so
// that old trails do not reappear when it is turned on again.
func (ses *Session) SetConfig(cfg crt.EffectConfig) error {
	if ses.cfg.BurnIn > 0 && cfg.BurnIn == 0 {
		if ses.Accumulator != nil {
			ses.Accumulator.Reset()
		}
		if ses.Effects != nil {
			ses.Effects.Reset()
		}
		logger.Log(logger.Allow, logTag, "burn-in history discarded")
	}
	ses.cfg = cfg
	ses.Rasterizer.SetConfig(cfg)
	ses.Driver.SetConfig(cfg)
	return nil
}

// SetFont replaces the font face used by the rasterizer. The grid size is
// recomputed for the new cell metrics and the tcell screen will receive a
// resize event if the number of cells changes. On error the previous face
// remains in use.
func (ses *Session) SetFont(name string, size float64) error {
	atlas, err := newAtlas(ses.dev, name, size, ses.pixelRatio)
	if err != nil {
		return curated.Errorf(SetupError, err)
	}
	if err := ses.Rasterizer.SetAtlas(atlas); err != nil {
		return curated.Errorf(SetupError, err)
	}
	m := atlas.Metrics()
	logger.Logf(logger.Allow, logTag, "font changed: cell size %dx%d", m.CellWidth, m.CellHeight)
	return nil
}

// SetViewport changes the size of the viewport in pixels. The tcell screen
// will receive a resize event if the number of cells changes.
func (ses *Session) SetViewport(width, height int) {
	if err := ses.Rasterizer.SetViewport(width, height); err != nil {
		logger.Log(logger.Allow, logTag, err)
	}
}

// Memviz writes a graphviz representation of the grid most recently
// forwarded to the rasterizer.
func (ses *Session) Memviz(output io.Writer) {
	memviz.Map(output, ses.Connector.Mirror())
}

// Dispose of all parts of the pipeline. The tcell screen is finalised. An
// Effects instance passed with the Settings is not disposed.
func (ses *Session) Dispose() {
	if ses.Driver != nil {
		ses.Driver.Dispose()
	}
	if ses.Connector != nil {
		ses.Connector.Dispose()
	}
	if ses.Screen != nil {
		ses.Screen.Fini()
	}
	if ses.Compositor != nil {
		ses.Compositor.Dispose()
	}
	if ses.Accumulator != nil {
		ses.Accumulator.Dispose()
	}
	if ses.Rasterizer != nil {
		ses.Rasterizer.Dispose()
	}
}
