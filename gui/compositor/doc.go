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

// Package compositor applies the CRT effects to the rasterized terminal
// texture. The effects are a chain of passes, each implementing the Pass
// interface, applied in a fixed order:
//
//	warp           barrel distortion (screen curvature)
//	rasterization  scanline, pixel grid or subpixel mask
//	chromatic      static RGB channel offset
//	bloom          glow of bright regions and the burn-in accumulation
//	hsync          per-scanline horizontal displacement
//	jitter         whole frame positional offset
//	noise          flicker and static noise
//	glowline       travelling horizontal glow line
//	final          brightness and background color blend
//
// The order matters because later passes operate on coordinates that have
// already been warped by the curvature.
//
// A pass reports whether it has anything to do for the current configuration.
// Inactive passes are skipped entirely, which means that an effect with an
// intensity of zero produces output that is bit-identical to not having the
// pass at all. With every intensity at zero and no rasterization mode, the
// output of the compositor is identical to the input.
//
// Time varying effects take their randomness from the random package, seeded
// by the frame time. The output of Render() is therefore deterministic for a
// fixed input texture, configuration and time.
package compositor
