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

// Package fonts loads font faces and maintains the glyph atlas used by the
// text rasterizer.
//
// Three sources of font face are supported. The name "basic" selects the 7x13
// bitmap face from golang.org/x/image/font/basicfont. The name "gomono"
// selects the embedded Go Mono typeface. Any other name is treated as the
// path to a TrueType or OpenType font file.
//
// The Atlas type is a single alpha image in which glyphs are rasterized on
// demand into fixed size slots. Every slot is the size of one grid cell,
// except for double-width characters which occupy two slots side by side.
//
// Licencing
//
// Go Mono is licenced under the same BSD style licence as the Go source
// code.
package fonts
