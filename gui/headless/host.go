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

package headless

import "github.com/jetsetilly/crtterm/gui/framebuffer"

// Presenter receives composed frames.
type Presenter interface {
	Present(*framebuffer.Texture) error
}

// Host combines a Scheduler with a Presenter. Posted functions are run
// immediately because there is no separate render goroutine.
type Host struct {
	*Scheduler
	presenter Presenter
}

// NewHost is the preferred method of initialisation for the Host type.
func NewHost(presenter Presenter) *Host {
	return &Host{
		Scheduler: NewScheduler(),
		presenter: presenter,
	}
}

// Present forwards the frame to the presenter.
func (h *Host) Present(tex *framebuffer.Texture) error {
	return h.presenter.Present(tex)
}

// Post runs the function immediately.
func (h *Host) Post(f func()) {
	f()
}
