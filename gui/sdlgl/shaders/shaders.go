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

// Package shaders embeds the GLSL programs used by the sdlgl package.
package shaders

import (
	_ "embed"
)

//go:embed straight.vert
var StraightVertexShader []byte

//go:embed gui.frag
var GUIShader []byte

//go:embed screen.frag
var ScreenShader []byte

//go:embed quad.vert
var QuadVertexShader []byte

//go:embed phosphor.frag
var PhosphorShader []byte

//go:embed warp.frag
var WarpShader []byte

//go:embed rasterization.frag
var RasterizationShader []byte

//go:embed chromatic.frag
var ChromaticShader []byte

//go:embed bloom.frag
var BloomShader []byte

//go:embed hsync.frag
var HSyncShader []byte

//go:embed jitter.frag
var JitterShader []byte

//go:embed noise.frag
var NoiseShader []byte

//go:embed glowline.frag
var GlowlineShader []byte

//go:embed final.frag
var FinalShader []byte
