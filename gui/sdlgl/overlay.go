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

package sdlgl

import (
	"github.com/inkyblackness/imgui-go/v4"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/jetsetilly/crtterm/prefs"
	"github.com/lucasb-eyer/go-colorful"
)

// overlay is the imgui window for editing the CRT preferences. every change
// creates a new EffectConfig which replaces the previous one wholesale.
type overlay struct {
	open bool

	prefs *crt.Preferences
	apply func(crt.EffectConfig) error

	// called with the face name and point size when either is changed. nil
	// if font changes are not supported
	font func(string, float64) error

	// the most recent error. shown in the window until the next successful
	// change
	err string
}

var fontFaces = []string{fonts.FaceBasic, fonts.FaceGoMono}

var rasterizationModes = []crt.RasterizationMode{
	crt.RasterizationNone,
	crt.RasterizationScanline,
	crt.RasterizationPixel,
	crt.RasterizationSubpixel,
}

func (ov *overlay) draw() {
	if !ov.open || ov.prefs == nil {
		return
	}

	imgui.SetNextWindowPosV(imgui.Vec2{X: 20, Y: 20}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	if !imgui.BeginV("CRT Preferences", &ov.open, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}

	var changed bool

	imgui.PushItemWidth(250)

	changed = ov.drawColor("Font Colour##fontcolor", &ov.prefs.FontColor) || changed
	changed = ov.drawColor("Background##backgroundcolor", &ov.prefs.BackgroundColor) || changed

	if ov.font != nil {
		ov.drawFont()
	}

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()

	changed = ov.drawIntensity("Screen Curvature##curvature", &ov.prefs.ScreenCurvature) || changed
	changed = ov.drawIntensity("Bloom##bloom", &ov.prefs.Bloom) || changed
	changed = ov.drawIntensity("Brightness##brightness", &ov.prefs.Brightness) || changed
	changed = ov.drawIntensity("Flickering##flickering", &ov.prefs.Flickering) || changed
	changed = ov.drawIntensity("Horizontal Sync##hsync", &ov.prefs.HorizontalSync) || changed
	changed = ov.drawIntensity("Jitter##jitter", &ov.prefs.Jitter) || changed
	changed = ov.drawIntensity("Static Noise##staticnoise", &ov.prefs.StaticNoise) || changed
	changed = ov.drawIntensity("Glowing Line##glowingline", &ov.prefs.GlowingLine) || changed
	changed = ov.drawIntensity("Burn-In##burnin", &ov.prefs.BurnIn) || changed
	changed = ov.drawIntensity("RGB Shift##rgbshift", &ov.prefs.RGBShift) || changed

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()

	changed = ov.drawRasterization() || changed
	changed = ov.drawIntensity("Rasterization Intensity##rasterizationintensity", &ov.prefs.RasterizationIntensity) || changed

	imgui.PopItemWidth()

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()

	if imgui.Button("Flat") {
		ov.setError(ov.prefs.Apply(crt.Flat(), ov.prefs.FontFace.String(), ov.prefs.FontSize.Get().(float64)))
		changed = true
	}
	imgui.SameLine()
	if imgui.Button("Defaults") {
		ov.setError(ov.prefs.Apply(crt.Default(), ov.prefs.FontFace.String(), ov.prefs.FontSize.Get().(float64)))
		changed = true
	}
	imgui.SameLine()
	if imgui.Button("Save") {
		ov.setError(ov.prefs.Save())
	}

	if ov.err != "" {
		imgui.PushTextWrapPos()
		imgui.Text(ov.err)
		imgui.PopTextWrapPos()
	}

	imgui.End()

	if changed {
		cfg, err := ov.prefs.Snapshot()
		if err == nil {
			err = ov.apply(cfg)
		}
		ov.setError(err)
	}
}

func (ov *overlay) setError(err error) {
	if err == nil {
		ov.err = ""
		return
	}
	ov.err = err.Error()
	logger.Log(logger.Allow, logTag, err)
}

func (ov *overlay) drawIntensity(label string, p *prefs.Float) bool {
	f := float32(p.Get().(float64))
	if imgui.SliderFloatV(label, &f, 0.0, 1.0, "%.2f", imgui.SliderFlagsNone) {
		ov.setError(p.Set(f))
		return true
	}
	return false
}

func (ov *overlay) drawColor(label string, p *prefs.String) bool {
	c, err := colorful.Hex(p.String())
	if err != nil {
		c = colorful.Color{}
	}

	col := [3]float32{float32(c.R), float32(c.G), float32(c.B)}
	if imgui.ColorEdit3(label, &col) {
		c = colorful.Color{R: float64(col[0]), G: float64(col[1]), B: float64(col[2])}
		ov.setError(p.Set(c.Clamped().Hex()))
		return true
	}
	return false
}

// font changes are applied immediately and separately from the effect
// configuration because they renegotiate the grid size.
func (ov *overlay) drawFont() {
	var changed bool

	current := ov.prefs.FontFace.String()
	if imgui.BeginComboV("Font##fontface", current, imgui.ComboFlagsNone) {
		for _, f := range fontFaces {
			if imgui.Selectable(f) && f != current {
				ov.setError(ov.prefs.FontFace.Set(f))
				changed = true
			}
		}
		imgui.EndCombo()
	}

	sz := float32(ov.prefs.FontSize.Get().(float64))
	if imgui.SliderFloatV("Font Size##fontsize", &sz, 4, 128, "%.0f", imgui.SliderFlagsNone) {
		ov.setError(ov.prefs.FontSize.Set(float64(sz)))
		changed = true
	}

	if changed {
		ov.setError(ov.font(ov.prefs.FontFace.String(), ov.prefs.FontSize.Get().(float64)))
	}
}

func (ov *overlay) drawRasterization() bool {
	current := crt.RasterizationMode(ov.prefs.RasterizationMode.Get().(int))

	var changed bool

	if imgui.BeginComboV("Rasterization##rasterization", current.String(), imgui.ComboFlagsNone) {
		for _, m := range rasterizationModes {
			if imgui.Selectable(m.String()) {
				ov.setError(ov.prefs.RasterizationMode.Set(int(m)))
				changed = true
			}
		}
		imgui.EndCombo()
	}

	return changed
}
