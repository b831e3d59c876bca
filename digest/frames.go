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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/crtterm/gui/framebuffer"
)

// Presenter is the interface to which frames are forwarded after hashing.
type Presenter interface {
	Present(*framebuffer.Texture) error
}

// Frames generates a sha1 value of every presented frame. It does not display
// the frame anywhere unless a Presenter has been specified with Forward().
//
// Note that the use of sha1 is fine for this application because this is not a
// cryptographic task.
type Frames struct {
	digest [sha1.Size]byte
	pixels []byte
	frames int

	next Presenter
}

// NewFrames is the preferred method of initialisation for the Frames type.
func NewFrames() *Frames {
	return &Frames{}
}

// Forward presented frames to another Presenter after they have been hashed.
func (dig *Frames) Forward(next Presenter) {
	dig.next = next
}

// Hash implements the Digest interface.
func (dig *Frames) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Frames) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames included in the hash.
func (dig *Frames) Frames() int {
	return dig.frames
}

// Present implements the driver.Presenter interface.
func (dig *Frames) Present(tex *framebuffer.Texture) error {
	img := tex.ToNRGBA()

	// preserve the first few bytes for a chained fingerprint
	l := len(dig.digest) + len(img.Pix)
	if cap(dig.pixels) < l {
		dig.pixels = make([]byte, l)
	}
	dig.pixels = dig.pixels[:l]

	n := copy(dig.pixels, dig.digest[:])
	copy(dig.pixels[n:], img.Pix)

	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++

	if dig.next != nil {
		return dig.next.Present(tex)
	}
	return nil
}
