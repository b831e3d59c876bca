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

package crt

import (
	"fmt"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/prefs"
	"github.com/jetsetilly/crtterm/resources"
	"github.com/lucasb-eyer/go-colorful"
)

// Preferences is the persistent form of EffectConfig plus the font settings
// used by the glyph atlas.
type Preferences struct {
	dsk *prefs.Disk

	FontColor       prefs.String
	BackgroundColor prefs.String

	ScreenCurvature prefs.Float
	Bloom           prefs.Float
	Brightness      prefs.Float
	Flickering      prefs.Float
	HorizontalSync  prefs.Float
	Jitter          prefs.Float
	StaticNoise     prefs.Float
	GlowingLine     prefs.Float
	BurnIn          prefs.Float
	RGBShift        prefs.Float

	RasterizationMode      prefs.Int
	RasterizationIntensity prefs.Float

	// name of the font face. see the fonts package
	FontFace prefs.String

	// size of font face in points
	FontSize prefs.Float
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

const (
	defFontFace = "gomono"
	defFontSize = 14.0
)

// NewPreferences is the preferred method of initialisation for the Preferences
// type.
func NewPreferences() (*Preferences, error) {
	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p := &Preferences{}

	// hooks are set before defaults so that the default values are also
	// checked
	p.setHooks()
	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	for k, v := range p.entries() {
		if err := p.dsk.Add(k, v); err != nil {
			return nil, err
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, err
	}

	return p, nil
}

type pref interface {
	fmt.Stringer
	Set(prefs.Value) error
	Get() prefs.Value
	Reset() error
}

func (p *Preferences) entries() map[string]pref {
	return map[string]pref{
		"crt.fontColor":              &p.FontColor,
		"crt.backgroundColor":        &p.BackgroundColor,
		"crt.screenCurvature":        &p.ScreenCurvature,
		"crt.bloom":                  &p.Bloom,
		"crt.brightness":             &p.Brightness,
		"crt.flickering":             &p.Flickering,
		"crt.horizontalSync":         &p.HorizontalSync,
		"crt.jitter":                 &p.Jitter,
		"crt.staticNoise":            &p.StaticNoise,
		"crt.glowingLine":            &p.GlowingLine,
		"crt.burnIn":                 &p.BurnIn,
		"crt.rgbShift":               &p.RGBShift,
		"crt.rasterizationMode":      &p.RasterizationMode,
		"crt.rasterizationIntensity": &p.RasterizationIntensity,
		"crt.fontFace":               &p.FontFace,
		"crt.fontPoints":             &p.FontSize,
	}
}

func (p *Preferences) intensities() map[string]*prefs.Float {
	return map[string]*prefs.Float{
		ParamScreenCurvature:        &p.ScreenCurvature,
		ParamBloom:                  &p.Bloom,
		ParamBrightness:             &p.Brightness,
		ParamFlickering:             &p.Flickering,
		ParamHorizontalSync:         &p.HorizontalSync,
		ParamJitter:                 &p.Jitter,
		ParamStaticNoise:            &p.StaticNoise,
		ParamGlowingLine:            &p.GlowingLine,
		ParamBurnIn:                 &p.BurnIn,
		ParamRGBShift:               &p.RGBShift,
		ParamRasterizationIntensity: &p.RasterizationIntensity,
	}
}

// the pre hooks reject values that would fail NewEffectConfig(). an invalid
// value in the prefs file therefore causes Load() to fail rather than the
// first call to Snapshot()
func (p *Preferences) setHooks() {
	for name, f := range p.intensities() {
		f.SetHookPre(func(v prefs.Value) error {
			_, err := clampIntensity(name, v.(float64))
			return err
		})
	}

	colorHook := func(name string) func(prefs.Value) error {
		return func(v prefs.Value) error {
			if _, err := colorful.Hex(v.(string)); err != nil {
				return curated.Errorf(InvalidValue, name, v)
			}
			return nil
		}
	}
	p.FontColor.SetHookPre(colorHook(ParamFontColor))
	p.BackgroundColor.SetHookPre(colorHook(ParamBackgroundColor))

	p.RasterizationMode.SetHookPre(func(v prefs.Value) error {
		_, err := ParseRasterizationMode(fmt.Sprintf("%d", v.(int)))
		return err
	})

	p.FontSize.SetHookPre(func(v prefs.Value) error {
		if v.(float64) < 4 || v.(float64) > 128 {
			return curated.Errorf(OutOfRange, "fontPoints", v)
		}
		return nil
	})
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() error {
	return p.Apply(Default(), defFontFace, defFontSize)
}

// Apply sets the preference values from an EffectConfig and font settings.
// The config should have been created with NewEffectConfig().
func (p *Preferences) Apply(cfg EffectConfig, face string, size float64) error {
	if err := p.FontColor.Set(cfg.FontColor.Hex()); err != nil {
		return err
	}
	if err := p.BackgroundColor.Set(cfg.BackgroundColor.Hex()); err != nil {
		return err
	}
	for name, v := range cfg.intensities() {
		if err := p.intensities()[name].Set(*v); err != nil {
			return err
		}
	}
	if err := p.RasterizationMode.Set(int(cfg.RasterizationMode)); err != nil {
		return err
	}
	if err := p.FontFace.Set(face); err != nil {
		return err
	}
	return p.FontSize.Set(size)
}

// Snapshot returns a validated EffectConfig built from the current preference
// values.
func (p *Preferences) Snapshot() (EffectConfig, error) {
	var cfg EffectConfig
	var err error

	cfg.FontColor, err = colorful.Hex(p.FontColor.String())
	if err != nil {
		return EffectConfig{}, curated.Errorf(InvalidValue, ParamFontColor, p.FontColor.String())
	}
	cfg.BackgroundColor, err = colorful.Hex(p.BackgroundColor.String())
	if err != nil {
		return EffectConfig{}, curated.Errorf(InvalidValue, ParamBackgroundColor, p.BackgroundColor.String())
	}

	for name, v := range cfg.intensities() {
		*v = p.intensities()[name].Get().(float64)
	}
	cfg.RasterizationMode = RasterizationMode(p.RasterizationMode.Get().(int))

	return NewEffectConfig(cfg)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
