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

// Package demo is a small tcell program used as the content of the CRT
// terminal. It draws a title bar, colour and attribute samples, wide
// characters and a text area that echoes typed input.
//
// Ctrl-G rings the bell, Ctrl-L clears the text area and Ctrl-Q ends the
// program.
package demo
