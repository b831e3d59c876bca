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

// Package grid is the data model shared by the rendering pipeline and the
// connector to the external terminal buffer. A Grid is an ordered set of rows
// of Cells plus a cursor and an optional selection.
//
// A Cell is a value type. It is replaced wholesale on update and never
// mutated in place.
//
// GridSize is derived from the viewport dimensions and the cell Metrics of the
// active glyph atlas with the ComputeSize() function. The computation is
// deterministic.
package grid
