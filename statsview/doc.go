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

// Package statsview serves runtime statistics over HTTP while crtterm is
// running. The server is only included when the statsview build tag is
// present:
//
//	go build -tags statsview .
//
// and is started with the -statsview flag. Frame timing problems (allocation
// pressure from the per-frame textures in particular) are easiest to see
// in the heap and GC graphs at:
//
//	localhost:12680/debug/statsview
//
// Standard pprof statistics are at:
//
//	localhost:12680/debug/pprof/
package statsview
