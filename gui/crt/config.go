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
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/lucasb-eyer/go-colorful"
)

// Sentinal error patterns for configuration errors.
const (
	OutOfRange       = "crt config: %s out of range (%v)"
	UnknownParameter = "crt config: unknown parameter (%s)"
	InvalidValue     = "crt config: invalid value for %s (%v)"
	MissingParameter = "crt config: missing parameter (%s)"
)

// RasterizationMode is the simulated structure of the display surface.
type RasterizationMode int

// List of valid RasterizationMode values.
const (
	RasterizationNone RasterizationMode = iota
	RasterizationScanline
	RasterizationPixel
	RasterizationSubpixel
)

var rasterizationNames = []string{"none", "scanline", "pixel", "subpixel"}

func (m RasterizationMode) String() string {
	if m < RasterizationNone || m > RasterizationSubpixel {
		return fmt.Sprintf("unknown (%d)", int(m))
	}
	return rasterizationNames[m]
}

// ParseRasterizationMode accepts either the name or the number of the mode.
func ParseRasterizationMode(s string) (RasterizationMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range rasterizationNames {
		if s == n {
			return RasterizationMode(i), nil
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < int(RasterizationNone) || v > int(RasterizationSubpixel) {
		return RasterizationNone, curated.Errorf(InvalidValue, "rasterizationMode", s)
	}
	return RasterizationMode(v), nil
}

// EffectConfig is an immutable snapshot of the effect parameters. All
// intensities are in the range 0 to 1.
//
// Values should be created with NewEffectConfig(), Default() or Flat() and
// then treated as read-only. Changing settings means creating a new value.
type EffectConfig struct {
	FontColor       colorful.Color
	BackgroundColor colorful.Color

	ScreenCurvature float64
	Bloom           float64
	Brightness      float64
	Flickering      float64
	HorizontalSync  float64
	Jitter          float64
	StaticNoise     float64
	GlowingLine     float64
	BurnIn          float64

	// static chromatic aberration
	RGBShift float64

	RasterizationMode      RasterizationMode
	RasterizationIntensity float64
}

// parameter names as used by ParseEffectConfig() and in error messages
const (
	ParamFontColor              = "fontColor"
	ParamBackgroundColor        = "backgroundColor"
	ParamScreenCurvature        = "screenCurvature"
	ParamBloom                  = "bloom"
	ParamBrightness             = "brightness"
	ParamFlickering             = "flickering"
	ParamHorizontalSync         = "horizontalSync"
	ParamJitter                 = "jitter"
	ParamStaticNoise            = "staticNoise"
	ParamGlowingLine            = "glowingLine"
	ParamBurnIn                 = "burnIn"
	ParamRGBShift               = "rgbShift"
	ParamRasterizationMode      = "rasterizationMode"
	ParamRasterizationIntensity = "rasterizationIntensity"
)

// intensities returns a pointer to every intensity field along with its
// parameter name.
func (cfg *EffectConfig) intensities() map[string]*float64 {
	return map[string]*float64{
		ParamScreenCurvature:        &cfg.ScreenCurvature,
		ParamBloom:                  &cfg.Bloom,
		ParamBrightness:             &cfg.Brightness,
		ParamFlickering:             &cfg.Flickering,
		ParamHorizontalSync:         &cfg.HorizontalSync,
		ParamJitter:                 &cfg.Jitter,
		ParamStaticNoise:            &cfg.StaticNoise,
		ParamGlowingLine:            &cfg.GlowingLine,
		ParamBurnIn:                 &cfg.BurnIn,
		ParamRGBShift:               &cfg.RGBShift,
		ParamRasterizationIntensity: &cfg.RasterizationIntensity,
	}
}

// values that differ from a bound by less than this amount are clamped to the
// bound. anything further out is rejected.
const clampTolerance = 1e-6

func clampIntensity(name string, v float64) (float64, error) {
	if math.IsNaN(v) || v < -clampTolerance || v > 1+clampTolerance {
		return v, curated.Errorf(OutOfRange, name, v)
	}
	return math.Min(math.Max(v, 0), 1), nil
}

func validColor(name string, c colorful.Color) (colorful.Color, error) {
	if math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) {
		return c, curated.Errorf(InvalidValue, name, c)
	}
	if !c.IsValid() {
		// the same tolerance as intensities
		cl := c.Clamped()
		if math.Abs(cl.R-c.R) > clampTolerance || math.Abs(cl.G-c.G) > clampTolerance || math.Abs(cl.B-c.B) > clampTolerance {
			return c, curated.Errorf(OutOfRange, name, c)
		}
		return cl, nil
	}
	return c, nil
}

// NewEffectConfig validates the supplied configuration and returns a copy
// with every value inside its range. Values outside the range, NaN values
// and unknown rasterization modes are rejected.
func NewEffectConfig(cfg EffectConfig) (EffectConfig, error) {
	var err error

	for name, v := range cfg.intensities() {
		*v, err = clampIntensity(name, *v)
		if err != nil {
			return EffectConfig{}, err
		}
	}

	cfg.FontColor, err = validColor(ParamFontColor, cfg.FontColor)
	if err != nil {
		return EffectConfig{}, err
	}
	cfg.BackgroundColor, err = validColor(ParamBackgroundColor, cfg.BackgroundColor)
	if err != nil {
		return EffectConfig{}, err
	}

	if cfg.RasterizationMode < RasterizationNone || cfg.RasterizationMode > RasterizationSubpixel {
		return EffectConfig{}, curated.Errorf(InvalidValue, ParamRasterizationMode, int(cfg.RasterizationMode))
	}

	return cfg, nil
}

// Flat returns the configuration in which every effect is disabled. The
// output of the compositor is then identical to the rasterized grid.
func Flat() EffectConfig {
	return EffectConfig{
		FontColor:         colorful.Color{R: 1, G: 1, B: 1},
		BackgroundColor:   colorful.Color{},
		RasterizationMode: RasterizationNone,
	}
}

// default values for the effect parameters
const (
	defFontColor              = "#ff8100"
	defBackgroundColor        = "#000000"
	defScreenCurvature        = 0.3
	defBloom                  = 0.55
	defBrightness             = 0.5
	defFlickering             = 0.1
	defHorizontalSync         = 0.08
	defJitter                 = 0.2
	defStaticNoise            = 0.12
	defGlowingLine            = 0.2
	defBurnIn                 = 0.25
	defRGBShift               = 0.0
	defRasterizationMode      = RasterizationScanline
	defRasterizationIntensity = 0.5
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the default configuration. An amber phosphor with a
// moderate amount of every effect.
func Default() EffectConfig {
	return EffectConfig{
		FontColor:              mustHex(defFontColor),
		BackgroundColor:        mustHex(defBackgroundColor),
		ScreenCurvature:        defScreenCurvature,
		Bloom:                  defBloom,
		Brightness:             defBrightness,
		Flickering:             defFlickering,
		HorizontalSync:         defHorizontalSync,
		Jitter:                 defJitter,
		StaticNoise:            defStaticNoise,
		GlowingLine:            defGlowingLine,
		BurnIn:                 defBurnIn,
		RGBShift:               defRGBShift,
		RasterizationMode:      defRasterizationMode,
		RasterizationIntensity: defRasterizationIntensity,
	}
}

// ParseEffectConfig creates a configuration from named parameters. Every
// parameter must be present in the map. Unknown names are rejected.
//
// Colors are specified in the #rrggbb form. The rasterization mode can be
// specified by name or by number.
func ParseEffectConfig(params map[string]string) (EffectConfig, error) {
	for _, k := range paramNames() {
		if _, ok := params[k]; !ok {
			return EffectConfig{}, curated.Errorf(MissingParameter, k)
		}
	}
	return parseOnto(EffectConfig{}, params)
}

// ParseEffectConfigWithDefaults is like ParseEffectConfig() except that
// parameters not in the map take their default value.
func ParseEffectConfigWithDefaults(params map[string]string) (EffectConfig, error) {
	return parseOnto(Default(), params)
}

// paramNames returns the name of every parameter in sorted order.
func paramNames() []string {
	var cfg EffectConfig
	names := []string{ParamFontColor, ParamBackgroundColor, ParamRasterizationMode}
	for k := range cfg.intensities() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func parseOnto(cfg EffectConfig, params map[string]string) (EffectConfig, error) {
	intensities := cfg.intensities()

	// sort keys so that the error returned for a map with more than one bad
	// entry is predictable
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := strings.TrimSpace(params[k])

		if p, ok := intensities[k]; ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return EffectConfig{}, curated.Errorf(InvalidValue, k, v)
			}
			*p = f
			continue
		}

		switch k {
		case ParamFontColor, ParamBackgroundColor:
			c, err := colorful.Hex(v)
			if err != nil {
				return EffectConfig{}, curated.Errorf(InvalidValue, k, v)
			}
			if k == ParamFontColor {
				cfg.FontColor = c
			} else {
				cfg.BackgroundColor = c
			}
		case ParamRasterizationMode:
			m, err := ParseRasterizationMode(v)
			if err != nil {
				return EffectConfig{}, err
			}
			cfg.RasterizationMode = m
		default:
			return EffectConfig{}, curated.Errorf(UnknownParameter, k)
		}
	}

	return NewEffectConfig(cfg)
}

// Params is the inverse of ParseEffectConfig().
func (cfg EffectConfig) Params() map[string]string {
	p := map[string]string{
		ParamFontColor:         cfg.FontColor.Hex(),
		ParamBackgroundColor:   cfg.BackgroundColor.Hex(),
		ParamRasterizationMode: cfg.RasterizationMode.String(),
	}
	for k, v := range cfg.intensities() {
		p[k] = strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return p
}

// IsFlat returns true if every effect is disabled.
func (cfg EffectConfig) IsFlat() bool {
	for k, v := range cfg.intensities() {
		// rasterization intensity has no effect unless there is a mode
		if k == ParamRasterizationIntensity {
			continue
		}
		if *v != 0 {
			return false
		}
	}
	return cfg.RasterizationMode == RasterizationNone || cfg.RasterizationIntensity == 0
}
