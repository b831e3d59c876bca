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

// Package connector keeps the rasterizer consistent with an external terminal
// emulation buffer.
//
// The external buffer is the source of truth for content. The rasterizer is
// the source of truth for the physical size of the grid. When the rasterizer
// reports a change in grid size the connector resizes the external buffer to
// match and then performs a full Sync().
//
// Between resizes, change notifications from the external buffer are diffed
// against a mirror of the cells last forwarded to the rasterizer. Only cells
// that have actually changed are forwarded.
//
// The connector, the external buffer and the rasterizer must all be used from
// the same goroutine.
package connector
