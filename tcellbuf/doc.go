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

// Package tcellbuf is an external terminal buffer backed by a tcell simulation
// screen. Any program written for tcell can draw into the Screen type and the
// result will be rendered by the CRT pipeline.
//
// Changes drawn by the tcell program are published when the program calls
// Show() or Sync(). Publication takes a snapshot of the simulation screen,
// compares it with the previous snapshot and notifies subscribers of the rows
// that have changed.
//
// The tcell program will normally run in its own goroutine. Subscribers are
// notified through the post function supplied to NewScreen(), which should
// run the function on the goroutine that owns the render loop.
package tcellbuf
