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

// Package framebuffer provides the textures used by the rendering pipeline.
// Textures are allocated from a Device, which models the finite memory of a
// graphics device and the possibility of losing the device context.
//
// Every texture must be released exactly once with Destroy(). Destroy() is
// safe to call more than once but only the first call returns memory to the
// Device. The Live() function of the Device reports the number of textures
// that have not been released and is useful for checking release discipline
// in tests.
//
// The Sequence type conceptualises a sequence of textures of the same size.
// The key to the Sequence type is the texture index. The number of textures is
// defined at creation with NewSequence().
//
//	seq := NewSequence(dev, 2)
//
// The Setup() function must be called at least once after NewSequence() and
// called as often as necessary to ensure the dimensions are correct. Setup()
// returns true if the textures have been recreated, in which case their
// previous content has been lost.
//
//	changed, err := seq.Setup(800, 600)
//
// The Process() function runs the supplied draw() function with the indexed
// texture as the destination and returns that texture. The texture can then
// be used as the source for the next call to Process().
//
//	tex, err := seq.Process(0, func(dst *Texture) error {
//		dst.CopyFrom(src)
//		return nil
//	})
package framebuffer
