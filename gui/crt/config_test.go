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

package crt_test

import (
	"math"
	"testing"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/test"
)

func TestDefaultAndFlat(t *testing.T) {
	cfg, err := crt.NewEffectConfig(crt.Default())
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cfg, crt.Default())
	test.ExpectFailure(t, cfg.IsFlat())

	flat, err := crt.NewEffectConfig(crt.Flat())
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, flat.IsFlat())

	// rasterization intensity alone is not an effect
	flat.RasterizationIntensity = 1.0
	test.ExpectSuccess(t, flat.IsFlat())
	flat.RasterizationMode = crt.RasterizationPixel
	test.ExpectFailure(t, flat.IsFlat())
}

func TestOutOfRange(t *testing.T) {
	cfg := crt.Default()
	cfg.Bloom = 1.5
	_, err := crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, curated.Is(err, crt.OutOfRange))

	cfg = crt.Default()
	cfg.Jitter = -0.1
	_, err = crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, curated.Is(err, crt.OutOfRange))

	cfg = crt.Default()
	cfg.StaticNoise = math.NaN()
	_, err = crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, curated.Is(err, crt.OutOfRange))

	cfg = crt.Default()
	cfg.RasterizationMode = 4
	_, err = crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, curated.Is(err, crt.InvalidValue))

	cfg = crt.Default()
	cfg.FontColor.R = 2.0
	_, err = crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, curated.Is(err, crt.OutOfRange))
}

func TestClamping(t *testing.T) {
	// values a rounding error outside the range are clamped
	cfg := crt.Default()
	cfg.BurnIn = 1.0000000001
	cfg.Bloom = -0.0000000001
	cfg, err := crt.NewEffectConfig(cfg)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cfg.BurnIn, 1.0)
	test.ExpectEquality(t, cfg.Bloom, 0.0)
}

func TestParseEffectConfig(t *testing.T) {
	params := crt.Flat().Params()
	params[crt.ParamFontColor] = "#00ff00"
	params[crt.ParamBloom] = "0.75"
	params[crt.ParamRasterizationMode] = "subpixel"

	cfg, err := crt.ParseEffectConfig(params)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.FontColor.Hex(), "#00ff00")
	test.ExpectEquality(t, cfg.Bloom, 0.75)
	test.ExpectEquality(t, cfg.RasterizationMode, crt.RasterizationSubpixel)
	test.ExpectEquality(t, cfg.Jitter, 0.0)

	// mode by number
	params[crt.ParamRasterizationMode] = "2"
	cfg, err = crt.ParseEffectConfig(params)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cfg.RasterizationMode, crt.RasterizationPixel)

	with := func(k, v string) map[string]string {
		p := crt.Default().Params()
		p[k] = v
		return p
	}

	_, err = crt.ParseEffectConfig(with("wobble", "0.5"))
	test.ExpectSuccess(t, curated.Is(err, crt.UnknownParameter))

	_, err = crt.ParseEffectConfig(with(crt.ParamJitter, "lots"))
	test.ExpectSuccess(t, curated.Is(err, crt.InvalidValue))

	_, err = crt.ParseEffectConfig(with(crt.ParamJitter, "2"))
	test.ExpectSuccess(t, curated.Is(err, crt.OutOfRange))

	_, err = crt.ParseEffectConfig(with(crt.ParamBackgroundColor, "black"))
	test.ExpectSuccess(t, curated.Is(err, crt.InvalidValue))

	_, err = crt.ParseEffectConfig(with(crt.ParamRasterizationMode, "9"))
	test.ExpectSuccess(t, curated.Is(err, crt.InvalidValue))
}

func TestParseMissingParameter(t *testing.T) {
	_, err := crt.ParseEffectConfig(map[string]string{crt.ParamBloom: "0.3"})
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, crt.MissingParameter))

	// every kind of parameter is required
	for _, k := range []string{crt.ParamBurnIn, crt.ParamFontColor, crt.ParamRasterizationMode} {
		p := crt.Default().Params()
		delete(p, k)
		_, err = crt.ParseEffectConfig(p)
		test.ExpectSuccess(t, curated.Is(err, crt.MissingParameter))
	}

	_, err = crt.ParseEffectConfig(map[string]string{})
	test.ExpectSuccess(t, curated.Is(err, crt.MissingParameter))
}

func TestParseEffectConfigWithDefaults(t *testing.T) {
	cfg, err := crt.ParseEffectConfigWithDefaults(map[string]string{crt.ParamBloom: "0.3"})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cfg.Bloom, 0.3)

	// unspecified parameters take their default value
	test.ExpectEquality(t, cfg.Jitter, crt.Default().Jitter)
	test.ExpectEquality(t, cfg.FontColor.Hex(), crt.Default().FontColor.Hex())

	_, err = crt.ParseEffectConfigWithDefaults(map[string]string{"wobble": "0.5"})
	test.ExpectSuccess(t, curated.Is(err, crt.UnknownParameter))
}

func TestParamsRoundTrip(t *testing.T) {
	cfg := crt.Default()
	parsed, err := crt.ParseEffectConfig(cfg.Params())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, parsed.Bloom, cfg.Bloom)
	test.ExpectEquality(t, parsed.RasterizationMode, cfg.RasterizationMode)
	test.ExpectEquality(t, parsed.FontColor.Hex(), cfg.FontColor.Hex())
}
