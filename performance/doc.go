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

// Package performance measures the speed of the rendering pipeline. The
// pipeline is run headless, as fast as possible, for a fixed period of wall
// clock time and the number of frames produced is reported.
//
// The measurement can be run under the CPU profiler and a heap profile can be
// written at the end of the run. See the Profile type.
package performance
