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

package fonts

import (
	"os"

	"github.com/jetsetilly/crtterm/curated"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Names of the built in faces.
const (
	FaceBasic  = "basic"
	FaceGoMono = "gomono"
)

// FaceError is the sentinal error pattern for failures to load a face.
const FaceError = "fonts: %v"

// LoadFace returns the named face at the requested size. The pixelRatio
// argument is the ratio of physical pixels to logical pixels reported by the
// display.
//
// The size is ignored for the basic face, which is a fixed size bitmap face.
func LoadFace(name string, points float64, pixelRatio float64) (font.Face, error) {
	if pixelRatio <= 0 {
		pixelRatio = 1
	}

	var data []byte

	switch name {
	case FaceBasic:
		return basicfont.Face7x13, nil
	case FaceGoMono, "":
		data = gomono.TTF
	default:
		var err error
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, curated.Errorf(FaceError, err)
		}
	}

	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, curated.Errorf(FaceError, err)
	}

	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    points,
		DPI:     72 * pixelRatio,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, curated.Errorf(FaceError, err)
	}

	return face, nil
}
