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
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/gui/connector"
	"github.com/veandco/go-sdl2/sdl"
)

// service all outstanding SDL events.
func (s *SDL) service() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			s.quit = true

		case *sdl.WindowEvent:
			if ev.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				if s.resize != nil {
					s.resize(s.FramebufferSize())
				}
			}

		case *sdl.TextInputEvent:
			text := string(ev.Text[:])
			if i := strings.IndexByte(text, 0); i >= 0 {
				text = text[:i]
			}
			if s.io.WantTextInput() {
				s.io.AddInputCharacters(text)
			} else if s.keyboard != nil {
				for _, r := range text {
					s.keyboard(tcell.KeyRune, r, tcell.ModNone)
				}
			}

		case *sdl.KeyboardEvent:
			s.serviceKeyboard(ev)

		case *sdl.MouseWheelEvent:
			var deltaX, deltaY float32
			if ev.X > 0 {
				deltaX++
			} else if ev.X < 0 {
				deltaX--
			}
			if ev.Y > 0 {
				deltaY++
			} else if ev.Y < 0 {
				deltaY--
			}
			s.io.AddMouseWheelDelta(deltaX, deltaY)

		case *sdl.MouseButtonEvent:
			if ev.Button != sdl.BUTTON_LEFT {
				break
			}
			switch ev.Type {
			case sdl.MOUSEBUTTONDOWN:
				if s.io.WantCaptureMouse() {
					break
				}
				s.dragging = true
				s.pointer(s.pointerEvent(connector.PointerPress, ev.X, ev.Y))
			case sdl.MOUSEBUTTONUP:
				if !s.dragging {
					break
				}
				s.dragging = false
				s.pointer(s.pointerEvent(connector.PointerRelease, ev.X, ev.Y))
			}

		case *sdl.MouseMotionEvent:
			if s.dragging {
				s.pointer(s.pointerEvent(connector.PointerDrag, ev.X, ev.Y))
			}
		}
	}
}

// mouse events are in window coordinates and must be scaled to the
// framebuffer
func (s *SDL) pointerEvent(kind connector.PointerKind, x, y int32) connector.PointerEvent {
	r := s.plt.pixelRatio()
	return connector.PointerEvent{
		Kind: kind,
		X:    int(float32(x) * r),
		Y:    int(float32(y) * r),
	}
}

func (s *SDL) serviceKeyboard(ev *sdl.KeyboardEvent) {
	switch ev.Type {
	case sdl.KEYDOWN:
		s.io.KeyPress(int(ev.Keysym.Scancode))
	case sdl.KEYUP:
		s.io.KeyRelease(int(ev.Keysym.Scancode))
	}
	s.plt.updateKeyModifier(s.io)

	if ev.Type != sdl.KEYDOWN {
		return
	}

	if ev.Repeat == 0 {
		switch ev.Keysym.Sym {
		case sdl.K_F10:
			s.ToggleOverlay()
			return
		case sdl.K_F11:
			s.plt.setFullScreen(!s.plt.fullScreen)
			return
		}
	}

	if s.io.WantCaptureKeyboard() || s.keyboard == nil {
		return
	}

	if key, r, ok := translateKey(ev.Keysym); ok {
		s.keyboard(key, r, translateMod(ev.Keysym.Mod))
	}
}

var keys = map[sdl.Keycode]tcell.Key{
	sdl.K_RETURN:    tcell.KeyEnter,
	sdl.K_KP_ENTER:  tcell.KeyEnter,
	sdl.K_BACKSPACE: tcell.KeyBackspace2,
	sdl.K_TAB:       tcell.KeyTab,
	sdl.K_ESCAPE:    tcell.KeyEscape,
	sdl.K_UP:        tcell.KeyUp,
	sdl.K_DOWN:      tcell.KeyDown,
	sdl.K_LEFT:      tcell.KeyLeft,
	sdl.K_RIGHT:     tcell.KeyRight,
	sdl.K_HOME:      tcell.KeyHome,
	sdl.K_END:       tcell.KeyEnd,
	sdl.K_PAGEUP:    tcell.KeyPgUp,
	sdl.K_PAGEDOWN:  tcell.KeyPgDn,
	sdl.K_INSERT:    tcell.KeyInsert,
	sdl.K_DELETE:    tcell.KeyDelete,
	sdl.K_F1:        tcell.KeyF1,
	sdl.K_F2:        tcell.KeyF2,
	sdl.K_F3:        tcell.KeyF3,
	sdl.K_F4:        tcell.KeyF4,
	sdl.K_F5:        tcell.KeyF5,
	sdl.K_F6:        tcell.KeyF6,
	sdl.K_F7:        tcell.KeyF7,
	sdl.K_F8:        tcell.KeyF8,
	sdl.K_F9:        tcell.KeyF9,
	sdl.K_F12:       tcell.KeyF12,
}

// translateKey maps non-printing keys and control combinations to tcell
// keys. printable characters arrive through text input events.
func translateKey(sym sdl.Keysym) (tcell.Key, rune, bool) {
	if k, ok := keys[sym.Sym]; ok {
		return k, 0, true
	}

	ctrl := sym.Mod&(sdl.KMOD_LCTRL|sdl.KMOD_RCTRL) != 0
	if ctrl && sym.Sym >= sdl.K_a && sym.Sym <= sdl.K_z {
		n := sym.Sym - sdl.K_a
		return tcell.KeyCtrlA + tcell.Key(n), rune(n + 1), true
	}

	return tcell.KeyNUL, 0, false
}

func translateMod(mod uint16) tcell.ModMask {
	var m tcell.ModMask
	if mod&(sdl.KMOD_LSHIFT|sdl.KMOD_RSHIFT) != 0 {
		m |= tcell.ModShift
	}
	if mod&(sdl.KMOD_LCTRL|sdl.KMOD_RCTRL) != 0 {
		m |= tcell.ModCtrl
	}
	if mod&(sdl.KMOD_LALT|sdl.KMOD_RALT) != 0 {
		m |= tcell.ModAlt
	}
	return m
}
