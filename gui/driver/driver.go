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

package driver

import (
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/logger"
)

const logTag = "driver"

// Sentinal error patterns.
const (
	Disposed = "driver: disposed"
	Stopped  = "driver: stopped: %v"
)

// Scheduler requests a call to the supplied function at the next display
// refresh. The now argument is the refresh time in seconds. The returned
// function cancels the request.
type Scheduler interface {
	RequestFrame(func(now float64)) func()
}

// Presenter displays a finished frame.
type Presenter interface {
	Present(*framebuffer.Texture) error
}

// StaticPass draws the grid. Implemented by the rasterizer.
type StaticPass interface {
	RenderStaticPass() (*framebuffer.Texture, error)
}

// Accumulator blends a frame into the burn-in history. Implemented by the
// burn-in accumulator.
type Accumulator interface {
	Update(current *framebuffer.Texture, burnIn float64) (*framebuffer.Texture, error)
}

// Compositor applies the CRT effects. Implemented by the compositor.
type Compositor interface {
	Render(color *framebuffer.Texture, accum *framebuffer.Texture, cfg crt.EffectConfig, time float64) (*framebuffer.Texture, error)
}

// FrameState is owned by the driver and is updated at the start of every tick.
type FrameState struct {
	// seconds since the first tick. never decreases
	Time float64

	// number of ticks
	Frame int
}

// Driver is the render loop.
type Driver struct {
	static    StaticPass
	acc       Accumulator
	cmp       Compositor
	sched     Scheduler
	presenter Presenter

	cfg   crt.EffectConfig
	state FrameState

	// wall time of the first tick
	start   float64
	started bool

	cancel  func()
	running bool

	err     error
	onError []func(error)

	disposed bool
}

// NewDriver is the preferred method of initialisation for the Driver type. The
// loop does not start until Start() is called.
func NewDriver(static StaticPass, acc Accumulator, cmp Compositor, sched Scheduler, presenter Presenter, cfg crt.EffectConfig) *Driver {
	return &Driver{
		static:    static,
		acc:       acc,
		cmp:       cmp,
		sched:     sched,
		presenter: presenter,
		cfg:       cfg,
	}
}

// Start the render loop.
func (drv *Driver) Start() error {
	if drv.disposed {
		return curated.Errorf(Disposed)
	}
	if drv.err != nil {
		return curated.Errorf(Stopped, drv.err)
	}
	if drv.running {
		return nil
	}
	drv.running = true
	drv.schedule()
	return nil
}

// SetConfig replaces the effect configuration. The new configuration is used
// from the next tick.
func (drv *Driver) SetConfig(cfg crt.EffectConfig) {
	drv.cfg = cfg
}

// Config returns the current effect configuration.
func (drv *Driver) Config() crt.EffectConfig {
	return drv.cfg
}

// State returns the state of the most recent tick.
func (drv *Driver) State() FrameState {
	return drv.state
}

// OnError registers a function to be called when the render loop stops
// because of an error.
func (drv *Driver) OnError(f func(error)) {
	drv.onError = append(drv.onError, f)
}

// Err returns the error that stopped the render loop. Returns nil if the loop
// has not been stopped by an error.
func (drv *Driver) Err() error {
	return drv.err
}

// Running returns true if another tick has been requested.
func (drv *Driver) Running() bool {
	return drv.running
}

func (drv *Driver) schedule() {
	drv.cancel = drv.sched.RequestFrame(drv.tick)
}

func (drv *Driver) stop() {
	drv.running = false
	if drv.cancel != nil {
		drv.cancel()
		drv.cancel = nil
	}
}

func (drv *Driver) fail(err error) {
	drv.stop()
	drv.err = err
	logger.Logf(logger.Allow, logTag, "render loop stopped: %v", err)
	for _, f := range drv.onError {
		f(err)
	}
}

func (drv *Driver) advance(now float64) {
	if !drv.started {
		drv.started = true
		drv.start = now
	}
	t := now - drv.start
	if t > drv.state.Time {
		drv.state.Time = t
	}
	drv.state.Frame++
}

// tick is the function passed to the scheduler
func (drv *Driver) tick(now float64) {
	drv.cancel = nil
	if drv.disposed || !drv.running {
		return
	}

	drv.advance(now)

	// the configuration is fixed for the duration of the tick
	cfg := drv.cfg

	color, err := drv.static.RenderStaticPass()
	if err != nil {
		drv.fail(err)
		return
	}

	accum, err := drv.acc.Update(color, cfg.BurnIn)
	if err != nil {
		drv.fail(err)
		return
	}

	drv.schedule()

	frame, err := drv.cmp.Render(color, accum, cfg, drv.state.Time)
	if err != nil {
		drv.fail(err)
		return
	}

	// nothing to present if the grid is not ready
	if frame == nil {
		return
	}

	if err := drv.presenter.Present(frame); err != nil {
		drv.fail(err)
	}
}

// Dispose stops the render loop. Safe to call more than once. The components
// passed to NewDriver() are not disposed.
func (drv *Driver) Dispose() {
	if drv.disposed {
		return
	}
	drv.stop()
	drv.disposed = true
}
