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

package sdlgl

import (
	"maps"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/headless"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/jetsetilly/crtterm/resources"
)

const logTag = "sdl"

// InitError is the sentinal error pattern for failures during NewSDL().
const InitError = "sdlgl: %v"

const imguiIniFile = "imgui.ini"

// the number of functions that can be posted before Post() blocks
const postQueueLen = 256

// SDL is the host window. It implements the Scheduler and Presenter
// interfaces of the driver package and the PointerSource interface of the
// connector package.
//
// With the exception of Post() all functions must be called from the
// goroutine that called NewSDL().
type SDL struct {
	plt     *platform
	rnd     *glsl
	context *imgui.Context
	io      imgui.IO

	// the GPU implementation of the CRT effects. nil unless Effects() has
	// been called
	fx *Effects

	// frame requests are stepped once per buffer swap
	sched *headless.Scheduler
	start time.Time

	posted chan func()
	done   chan struct{}

	pointers    map[int]func(connector.PointerEvent)
	nextPointer int
	dragging    bool

	keyboard func(key tcell.Key, r rune, mod tcell.ModMask)
	resize   func(width, height int)

	overlay overlay
	bell    *bell

	quit bool
}

// NewSDL is the preferred method of initialisation for the SDL type.
//
// MUST ONLY be called from the main thread.
func NewSDL(title string) (*SDL, error) {
	s := &SDL{
		sched:    headless.NewScheduler(),
		posted:   make(chan func(), postQueueLen),
		done:     make(chan struct{}),
		pointers: make(map[int]func(connector.PointerEvent)),
	}

	var err error

	s.plt, err = newPlatform(title)
	if err != nil {
		return nil, curated.Errorf(InitError, err)
	}

	s.context = imgui.CreateContext(nil)
	s.io = imgui.CurrentIO()

	iniPath, err := resources.JoinPath(imguiIniFile)
	if err != nil {
		s.destroyPartial()
		return nil, curated.Errorf(InitError, err)
	}
	s.io.SetIniFilename(iniPath)

	s.plt.setKeyMapping(s.io)

	s.rnd, err = newGlsl(s.plt)
	if err != nil {
		s.destroyPartial()
		return nil, curated.Errorf(InitError, err)
	}

	// the bell is optional. it is not an error for there to be no audio
	// device
	err = s.LoadBell("")
	if err != nil {
		logger.Log(logger.Allow, logTag, err)
	}

	return s, nil
}

func (s *SDL) destroyPartial() {
	if s.context != nil {
		s.context.Destroy()
		s.context = nil
	}
	_ = s.plt.destroy()
}

// Destroy releases all resources. The Run() loop should have ended.
func (s *SDL) Destroy() {
	select {
	case <-s.done:
		return
	default:
	}
	close(s.done)

	if s.bell != nil {
		s.bell.destroy()
		s.bell = nil
	}
	if s.fx != nil {
		s.fx.destroy()
		s.fx = nil
		s.rnd.crtTexture = 0
	}
	s.rnd.destroy()
	s.destroyPartial()
}

// Post queues a function to be run on the goroutine of the Run() loop. Safe
// to call from any goroutine. Does nothing once the SDL instance has been
// destroyed.
func (s *SDL) Post(f func()) {
	select {
	case s.posted <- f:
	case <-s.done:
	}
}

// RequestFrame implements the driver.Scheduler interface. The function will
// be called after the next buffer swap with the number of seconds since the
// start of the Run() loop.
func (s *SDL) RequestFrame(f func(now float64)) func() {
	return s.sched.RequestFrame(f)
}

// Present implements the driver.Presenter interface. If the effects are being
// applied by the GPU then the processed frame is already in a GL texture and
// the texture argument is not uploaded.
func (s *SDL) Present(tex *framebuffer.Texture) error {
	if tex == nil {
		return nil
	}
	if s.fx != nil {
		s.rnd.crtTexture = s.fx.output
		return nil
	}
	s.rnd.upload(tex.ToNRGBA())
	return nil
}

// Effects returns the GPU implementation of the CRT effects. The Effects
// instance is created on first use and is destroyed with the SDL instance.
func (s *SDL) Effects() *Effects {
	if s.fx == nil {
		s.fx = newEffects()
	}
	return s.fx
}

// OnPointer implements the connector.PointerSource interface. Coordinates are
// in framebuffer pixels.
func (s *SDL) OnPointer(f func(connector.PointerEvent)) func() {
	id := s.nextPointer
	s.nextPointer++
	s.pointers[id] = f
	return func() {
		delete(s.pointers, id)
	}
}

func (s *SDL) pointer(ev connector.PointerEvent) {
	for _, id := range slices.Sorted(maps.Keys(s.pointers)) {
		s.pointers[id](ev)
	}
}

// SetKeyboard sets the function that receives key presses. Keys used by the
// window itself (F10 and F11) and keys used by the preferences overlay are
// not forwarded.
func (s *SDL) SetKeyboard(f func(key tcell.Key, r rune, mod tcell.ModMask)) {
	s.keyboard = f
}

// OnResize sets the function that is called when the size of the framebuffer
// changes. The dimensions are in framebuffer pixels.
func (s *SDL) OnResize(f func(width, height int)) {
	s.resize = f
}

// FramebufferSize returns the size of the drawable area in pixels.
func (s *SDL) FramebufferSize() (int, int) {
	sz := s.plt.framebufferSize()
	return int(sz[0]), int(sz[1])
}

// PixelRatio returns the ratio of framebuffer pixels to window coordinates.
func (s *SDL) PixelRatio() float64 {
	return float64(s.plt.pixelRatio())
}

// SetPreferences attaches the CRT preferences to the overlay. The apply
// function is called with a new EffectConfig whenever the preferences are
// changed through the overlay.
func (s *SDL) SetPreferences(p *crt.Preferences, apply func(crt.EffectConfig) error) {
	s.overlay.prefs = p
	s.overlay.apply = apply
}

// OnFontChange sets the function called when the font face or size is changed
// through the overlay.
func (s *SDL) OnFontChange(f func(name string, size float64) error) {
	s.overlay.font = f
}

// ToggleOverlay opens or closes the preferences overlay.
func (s *SDL) ToggleOverlay() {
	s.overlay.open = !s.overlay.open
}

// Quit ends the Run() loop at the end of the current iteration.
func (s *SDL) Quit() {
	s.quit = true
}

// Run the host loop until the window is closed or Quit() is called.
func (s *SDL) Run() error {
	s.start = time.Now()
	s.quit = false

	for !s.quit {
		s.service()
		s.runPosted()
		s.sched.Step(time.Since(s.start).Seconds())
		s.draw()
	}

	return nil
}

func (s *SDL) runPosted() {
	for {
		select {
		case f := <-s.posted:
			f()
		default:
			return
		}
	}
}

func (s *SDL) draw() {
	s.plt.newFrame()
	imgui.NewFrame()

	if id, ok := s.rnd.presentation(); ok {
		sz := s.plt.displaySize()
		imgui.BackgroundDrawList().AddImage(imgui.TextureID(id),
			imgui.Vec2{}, imgui.Vec2{X: sz[0], Y: sz[1]})
	}

	s.overlay.draw()

	imgui.Render()
	s.rnd.preRender()
	s.rnd.render()
	s.plt.postRender()
}
