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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function. The first argument is
// a pattern string which is stored alongside the values used to format it.
//
// Packages export the patterns they use as constants so that the caller can
// classify an error without resorting to string matching:
//
//	if curated.Is(err, framebuffer.ContextLost) {
//		// rebuild the pipeline
//	}
//
// The Has() function checks the entire chain of curated errors for the
// pattern. Values of type error that are not curated errors terminate the
// search but are available to errors.Is() and errors.As() through Unwrap().
//
// The Error() function removes duplicate adjacent parts of the message. For
// example "rasterizer: rasterizer: texture too large" is normalised to
// "rasterizer: texture too large".
package curated
