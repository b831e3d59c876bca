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
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/logger"
)

// Sentinal error patterns for resource errors. Both are fatal to a rendering
// session.
const (
	AllocationError = "framebuffer: cannot allocate %dx%d texture: %v"
	ContextLost     = "framebuffer: device context lost"
)

// bytes required by a single pixel
const bytesPerPixel = 16

// Device is the allocator of textures.
type Device struct {
	budget int64
	used   int64
	live   int
	lost   bool
}

// NewDevice is the preferred method of initialisation for the Device type. The
// budget is the maximum number of bytes that can be allocated at once. A
// budget of zero is unlimited.
func NewDevice(budget int64) *Device {
	return &Device{budget: budget}
}

// NewTexture allocates a new texture. All pixels are transparent black.
func (dev *Device) NewTexture(width, height int) (*Texture, error) {
	if err := dev.reserve(width, height, int64(width)*int64(height)*bytesPerPixel); err != nil {
		return nil, err
	}

	return &Texture{
		dev:    dev,
		Width:  width,
		Height: height,
		Pix:    make([]RGBA, width*height),
	}, nil
}

// reserve checks that an allocation of sz bytes is possible and adds it to
// the amount used
func (dev *Device) reserve(width, height int, sz int64) error {
	if dev.lost {
		return curated.Errorf(ContextLost)
	}
	if width <= 0 || height <= 0 {
		return curated.Errorf(AllocationError, width, height, "invalid dimensions")
	}
	if dev.budget > 0 && dev.used+sz > dev.budget {
		return curated.Errorf(AllocationError, width, height, "device memory exhausted")
	}
	dev.used += sz
	dev.live++
	return nil
}

func (dev *Device) release(sz int64) {
	dev.used -= sz
	dev.live--
}

// Lose marks the device context as lost. Every subsequent allocation fails and
// Err() returns a ContextLost error.
func (dev *Device) Lose() {
	if !dev.lost {
		logger.Log(logger.Allow, "framebuffer", "device context lost")
	}
	dev.lost = true
}

// Err returns a ContextLost error if the context has been lost.
func (dev *Device) Err() error {
	if dev.lost {
		return curated.Errorf(ContextLost)
	}
	return nil
}

// Live returns the number of textures and masks that have not been destroyed.
func (dev *Device) Live() int {
	return dev.live
}

// Used returns the number of bytes currently allocated.
func (dev *Device) Used() int64 {
	return dev.used
}
