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

package session_test

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/digest"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/fonts"
	"github.com/jetsetilly/crtterm/gui/framebuffer"
	"github.com/jetsetilly/crtterm/gui/headless"
	"github.com/jetsetilly/crtterm/session"
	"github.com/jetsetilly/crtterm/test"
)

// the basic face has 7x13 pixel cells
const (
	cellW = 7
	cellH = 13
)

func newSession(t *testing.T, cols, rows int) (*session.Session, *headless.Host, *headless.PNG) {
	t.Helper()

	png := headless.NewPNG(0, 0)
	host := headless.NewHost(png)

	ses, err := session.NewSession(host, session.Settings{
		Effect:   crt.Flat(),
		FontFace: fonts.FaceBasic,
		Width:    cols * cellW,
		Height:   rows * cellH,
	})
	test.DemandSuccess(t, err)
	t.Cleanup(ses.Dispose)

	return ses, host, png
}

func TestSession(t *testing.T) {
	ses, host, png := newSession(t, 10, 4)

	w, h := ses.Screen.Size()
	test.ExpectEquality(t, w, 10)
	test.ExpectEquality(t, h, 4)

	red := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 0))
	ses.Screen.SetContent(0, 0, ' ', nil, red)
	ses.Screen.Show()

	test.DemandSuccess(t, ses.Driver.Start())
	host.Run(3, 1.0/60)

	test.DemandEquality(t, png.Frames(), 3)
	test.ExpectEquality(t, png.Image().Bounds().Dx(), 10*cellW)
	test.ExpectEquality(t, png.Image().NRGBAAt(3, 3), color.NRGBA{R: 255, A: 255})
}

func TestViewport(t *testing.T) {
	ses, _, _ := newSession(t, 10, 4)

	ses.SetViewport(20*cellW, 6*cellH)
	w, h := ses.Screen.Size()
	test.ExpectEquality(t, w, 20)
	test.ExpectEquality(t, h, 6)
}

func TestSetFont(t *testing.T) {
	ses, host, png := newSession(t, 10, 4)

	test.DemandSuccess(t, ses.SetFont(fonts.FaceGoMono, 28))
	m := ses.Rasterizer.Metrics()
	test.ExpectSuccess(t, m.CellWidth > cellW)

	// the grid is renegotiated with the tcell screen
	w, h := ses.Screen.Size()
	test.ExpectEquality(t, w, 10*cellW/m.CellWidth)
	test.ExpectEquality(t, h, 4*cellH/m.CellHeight)

	// an unknown face leaves the current face in place
	err := ses.SetFont("/no/such/font.ttf", 14)
	test.ExpectSuccess(t, curated.Is(err, session.SetupError))
	test.ExpectEquality(t, ses.Rasterizer.Metrics(), m)

	test.DemandSuccess(t, ses.Driver.Start())
	host.Run(2, 1.0/60)
	test.ExpectEquality(t, png.Frames(), 2)
	test.ExpectEquality(t, png.Image().Bounds().Dx(), w*m.CellWidth)
}

func TestBurnInReset(t *testing.T) {
	ses, host, _ := newSession(t, 10, 4)

	cfg := crt.Flat()
	cfg.BurnIn = 0.9
	test.DemandSuccess(t, ses.SetConfig(cfg))

	red := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 0))
	ses.Screen.SetContent(0, 0, ' ', nil, red)
	ses.Screen.Show()

	test.DemandSuccess(t, ses.Driver.Start())
	host.Run(3, 1.0/60)
	test.ExpectApproximate(t, ses.Accumulator.Texture().At(3, 3).R, 1, 1e-4)

	ses.Screen.SetContent(0, 0, ' ', nil, tcell.StyleDefault)
	ses.Screen.Show()

	// turning burn-in off and on again without an intervening frame
	off := cfg
	off.BurnIn = 0
	test.DemandSuccess(t, ses.SetConfig(off))
	test.DemandSuccess(t, ses.SetConfig(cfg))

	// the history has gone so the accumulation is the current frame
	host.Run(1, 1.0/60)
	test.ExpectEquality(t, ses.Accumulator.Texture().At(3, 3).R, float32(0))
}

// fakeEffects passes the rasterized grid through unchanged
type fakeEffects struct {
	updates int
	renders int
	resets  int
}

func (fx *fakeEffects) Update(current *framebuffer.Texture, burnIn float64) (*framebuffer.Texture, error) {
	fx.updates++
	return current, nil
}

func (fx *fakeEffects) Render(color *framebuffer.Texture, accum *framebuffer.Texture, cfg crt.EffectConfig, time float64) (*framebuffer.Texture, error) {
	fx.renders++
	return color, nil
}

func (fx *fakeEffects) Reset() {
	fx.resets++
}

func TestEffects(t *testing.T) {
	png := headless.NewPNG(0, 0)
	host := headless.NewHost(png)
	fx := &fakeEffects{}

	ses, err := session.NewSession(host, session.Settings{
		Effect:   crt.Default(),
		FontFace: fonts.FaceBasic,
		Width:    10 * cellW,
		Height:   4 * cellH,
		Effects:  fx,
	})
	test.DemandSuccess(t, err)
	defer ses.Dispose()

	// the effects replace the burnin and compositor packages
	test.ExpectSuccess(t, ses.Accumulator == nil)
	test.ExpectSuccess(t, ses.Compositor == nil)

	red := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 0))
	ses.Screen.SetContent(0, 0, ' ', nil, red)
	ses.Screen.Show()

	test.DemandSuccess(t, ses.Driver.Start())
	host.Run(3, 1.0/60)

	test.ExpectEquality(t, fx.updates, 3)
	test.ExpectEquality(t, fx.renders, 3)
	test.ExpectEquality(t, png.Frames(), 3)

	// no curvature or scanlines in the presented frame
	test.ExpectEquality(t, png.Image().NRGBAAt(3, 3), color.NRGBA{R: 255, A: 255})

	cfg := crt.Default()
	cfg.BurnIn = 0
	test.DemandSuccess(t, ses.SetConfig(cfg))
	test.ExpectEquality(t, fx.resets, 1)
}

func TestViewportTooSmall(t *testing.T) {
	host := headless.NewHost(headless.NewPNG(0, 0))
	_, err := session.NewSession(host, session.Settings{
		Effect:   crt.Flat(),
		FontFace: fonts.FaceBasic,
		Width:    cellW - 1,
		Height:   cellH,
	})
	test.ExpectSuccess(t, curated.Is(err, session.ViewportSize))
}

func TestMemviz(t *testing.T) {
	ses, _, _ := newSession(t, 4, 2)

	var b strings.Builder
	ses.Memviz(&b)
	test.ExpectSuccess(t, strings.Contains(b.String(), "digraph"))
}

func TestDeterministic(t *testing.T) {
	hash := func() string {
		dig := digest.NewFrames()
		host := headless.NewHost(dig)

		ses, err := session.NewSession(host, session.Settings{
			Effect:   crt.Default(),
			FontFace: fonts.FaceBasic,
			Width:    12 * cellW,
			Height:   5 * cellH,
			ZeroSeed: true,
		})
		test.DemandSuccess(t, err)
		defer ses.Dispose()

		ses.Screen.SetContent(1, 1, 'A', nil, tcell.StyleDefault)
		ses.Screen.Show()

		test.DemandSuccess(t, ses.Driver.Start())
		host.Run(10, 1.0/60)
		test.ExpectEquality(t, dig.Frames(), 10)

		return dig.Hash()
	}

	test.ExpectEquality(t, hash(), hash())
}

func BenchmarkFrame(b *testing.B) {
	host := headless.NewHost(headless.NewPNG(0, 0))

	ses, err := session.NewSession(host, session.Settings{
		Effect:   crt.Default(),
		FontFace: fonts.FaceBasic,
		Width:    80 * cellW,
		Height:   24 * cellH,
		ZeroSeed: true,
	})
	if err != nil {
		b.Fatal(err)
	}
	defer ses.Dispose()

	for row := range 24 {
		for col := range 80 {
			ses.Screen.SetContent(col, row, rune('A'+(row+col)%26), nil, tcell.StyleDefault)
		}
	}
	ses.Screen.Show()

	if err := ses.Driver.Start(); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	host.Run(b.N, 1.0/60)
}
