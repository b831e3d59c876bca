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

// Package driver owns the render loop. Every tick of the loop does the
// following, in this order:
//
//  1. advance the frame time
//  2. draw dirty cells with the rasterizer's static pass
//  3. update the burn-in accumulation
//  4. schedule the next tick
//  5. render the CRT effects with the compositor
//  6. present the result
//
// The next tick is scheduled before the compositor runs so that a slow
// presentation does not delay the next frame request. Time driven effects are
// derived from the frame time and not from the number of frames rendered.
//
// A resource error at any stage stops the loop. The error is reported to the
// functions registered with OnError() and is returned by Err(). The loop is
// not restarted automatically.
package driver
