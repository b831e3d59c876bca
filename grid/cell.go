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

package grid

import "fmt"

// Color is an RGB color. The zero value is the default color, which is
// resolved by the rasterizer to the configured font or background color.
type Color struct {
	R, G, B uint8

	// Default is true if the color is not specified by the terminal. The RGB
	// values are ignored.
	Default bool
}

// DefaultColor is the color resolved by the rasterizer.
var DefaultColor = Color{Default: true}

// RGB returns a specified color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Attr is a set of style flags.
type Attr uint8

// List of valid style flags.
const (
	AttrBold Attr = 1 << iota
	AttrUnderline
	AttrInverse
	AttrDim
)

// Has returns true if all flags in f are set.
func (a Attr) Has(f Attr) bool {
	return a&f == f
}

// Cell is one grid position.
type Cell struct {
	// the zero rune indicates an empty cell
	Char rune

	Fg   Color
	Bg   Color
	Attr Attr
}

// Blank is an empty cell with default colors.
var Blank = Cell{Fg: DefaultColor, Bg: DefaultColor}

// IsBlank returns true if the cell draws nothing but its background.
func (c Cell) IsBlank() bool {
	return (c.Char == 0 || c.Char == ' ') && !c.Attr.Has(AttrUnderline) && !c.Attr.Has(AttrInverse)
}
