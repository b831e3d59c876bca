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

// Package rasterizer converts a grid of cells into a texture. The texture is
// exactly cols*cellWidth by rows*cellHeight pixels, where the cell size comes
// from the metrics of the glyph atlas.
//
// Cell, cursor and selection updates only mark regions of the texture as
// dirty. Drawing happens in RenderStaticPass(), which must be called once per
// frame before the texture is read by the rest of the pipeline.
//
// The grid size is negotiated either directly with UpdateGridSize() or from
// the viewport dimensions with SetViewport(). Listeners registered with
// OnGridSizeChange() are notified only when the number of columns or rows
// actually changes.
package rasterizer
