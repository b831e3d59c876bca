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

package framebuffer

import (
	"image"
)

// Mask is a single channel image allocated from a Device. It is used for
// coverage data such as rasterized glyphs.
type Mask struct {
	*image.Alpha

	dev       *Device
	destroyed bool
}

// NewMask allocates a new mask. All pixels are zero.
func (dev *Device) NewMask(width, height int) (*Mask, error) {
	if err := dev.reserve(width, height, int64(width)*int64(height)); err != nil {
		return nil, err
	}
	return &Mask{
		Alpha: image.NewAlpha(image.Rect(0, 0, width, height)),
		dev:   dev,
	}, nil
}

// Destroy returns the mask memory to the device. Safe to call more than once.
func (m *Mask) Destroy() {
	if m == nil || m.destroyed {
		return
	}
	m.destroyed = true
	m.dev.release(int64(m.Rect.Dx()) * int64(m.Rect.Dy()))
	m.Alpha = nil
}

// Destroyed returns true if Destroy() has been called.
func (m *Mask) Destroyed() bool {
	return m.destroyed
}
