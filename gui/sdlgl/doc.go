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

// Package sdlgl is the interactive host for the frame driver. It opens an
// SDL window with an OpenGL 3.2 core context and presents each composed frame
// by uploading it to a GL texture and drawing it behind the dear imgui layer.
//
// The buffer swap is synchronised with the vertical retrace and acts as the
// refresh signal. Frame requests made with RequestFrame() are run once per
// swap.
//
// Keyboard input is translated to tcell keys and delivered to the function
// given to SetKeyboard(). Mouse input is delivered as connector.PointerEvent
// values to functions registered with OnPointer(). Functions posted from
// other goroutines with Post() are run on the host goroutine before the next
// frame.
//
// F10 toggles the CRT preferences overlay and F11 toggles fullscreen.
package sdlgl
