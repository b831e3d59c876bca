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

// Package session assembles the rendering pipeline for a single terminal
// session. The glyph atlas, rasterizer, burn-in accumulator, compositor and
// frame driver are created together with the tcell screen that a program
// draws to, and the connector that forwards the screen contents to the
// rasterizer.
//
// The pipeline is independent of the host. The host provides the frame
// scheduler and the presenter, and a post function which is used to move
// screen publication onto the goroutine of the render loop. For the windowed
// host these are all provided by the sdlgl package. For headless use the
// headless package provides a scheduler and a PNG presenter.
package session
