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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/jetsetilly/crtterm/demo"
	"github.com/jetsetilly/crtterm/digest"
	"github.com/jetsetilly/crtterm/gui/crt"
	"github.com/jetsetilly/crtterm/gui/headless"
	"github.com/jetsetilly/crtterm/gui/sdlgl"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/jetsetilly/crtterm/modalflag"
	"github.com/jetsetilly/crtterm/performance"
	"github.com/jetsetilly/crtterm/prefs"
	"github.com/jetsetilly/crtterm/session"
	"github.com/jetsetilly/crtterm/statsview"
	"github.com/jetsetilly/crtterm/version"
)

const additionalHelp = `The RUN mode opens a window and runs the demonstration program in it. The
CRT preferences can be changed while running by pressing F10.

The SNAPSHOT mode renders the demonstration program without a window and
saves the final frame as a PNG file.

The PERFORMANCE mode renders the demonstration program without a window, as
fast as possible, and reports the frame rate.`

// #mainthread
func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "SNAPSHOT", "PERFORMANCE")
	md.AdditionalHelp(additionalHelp)

	// the version flag is only available at the top level
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *showVersion {
		ver, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, ver, rev)
		os.Exit(0)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "SNAPSHOT":
		err = snapshot(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// flags common to all modes
type common struct {
	log      *bool
	prefs    *string
	fontFace *string
	fontSize *float64
}

func addCommon(md *modalflag.Modes) common {
	return common{
		log:      md.AddBool("log", false, "echo debugging log to stdout"),
		prefs:    md.AddString("prefs", "", "preference overrides. eg. crt.bloom::0.2; crt.burnIn::0.5"),
		fontFace: md.AddString("face", "", "font face: gomono, basic (default from preferences)"),
		fontSize: md.AddFloat64("size", 0, "font size in points (default from preferences)"),
	}
}

// apply common flags and load CRT preferences
func (c common) apply() (*crt.Preferences, error) {
	if *c.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *c.prefs != "" {
		prefs.PushCommandLineStack(*c.prefs)
	}

	p, err := crt.NewPreferences()
	if err != nil {
		return nil, err
	}

	if *c.fontFace != "" {
		if err := p.FontFace.Set(*c.fontFace); err != nil {
			return nil, err
		}
	}
	if *c.fontSize > 0 {
		if err := p.FontSize.Set(*c.fontSize); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	bell := md.AddString("bell", "", "WAV or MP3 file to use for the terminal bell")
	memvizFile := md.AddString("memviz", "", "write graphviz representation of the grid to file on exit")
	cpuEffects := md.AddBool("cpu", false, "apply CRT effects on the CPU rather than the GPU")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, "run stats server on "+statsview.Address)
	}

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	crtPrefs, err := c.apply()
	if err != nil {
		return err
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout)
	}

	cfg, err := crtPrefs.Snapshot()
	if err != nil {
		return err
	}

	ver, _, _ := version.Version()
	win, err := sdlgl.NewSDL(fmt.Sprintf("%s %s", version.ApplicationName, ver))
	if err != nil {
		return err
	}
	defer win.Destroy()

	if *bell != "" {
		if err := win.LoadBell(*bell); err != nil {
			return err
		}
	}

	w, h := win.FramebufferSize()
	set := session.Settings{
		Effect:     cfg,
		FontFace:   crtPrefs.FontFace.String(),
		FontSize:   crtPrefs.FontSize.Get().(float64),
		PixelRatio: win.PixelRatio(),
		Width:      w,
		Height:     h,
	}
	if !*cpuEffects {
		set.Effects = win.Effects()
	}

	ses, err := session.NewSession(win, set)
	if err != nil {
		return err
	}
	defer ses.Dispose()

	ses.Screen.SetBeep(win.RingBell)
	if err := ses.Connector.SetupMouseSelection(win); err != nil {
		return err
	}

	win.SetPreferences(crtPrefs, ses.SetConfig)
	win.OnFontChange(ses.SetFont)
	win.SetKeyboard(ses.Screen.InjectKey)
	win.OnResize(ses.SetViewport)

	if err := ses.Driver.Start(); err != nil {
		return err
	}

	// ctrl-c in the launching terminal ends the session in the same way as
	// closing the window
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	go func() {
		<-intChan
		win.Post(win.Quit)
	}()

	go func() {
		demo.New(ses.Screen).Run()
		win.Post(win.Quit)
	}()

	if err := win.Run(); err != nil {
		return err
	}

	if *memvizFile != "" {
		f, err := os.Create(*memvizFile)
		if err != nil {
			return err
		}
		defer f.Close()
		ses.Memviz(f)
	}

	return ses.Driver.Err()
}

func snapshot(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	width := md.AddInt("width", 640, "width of viewport in pixels")
	height := md.AddInt("height", 400, "height of viewport in pixels")
	scale := md.AddFloat64("scale", 0, "scale the saved image by this factor")
	frames := md.AddInt("frames", 60, "number of frames to render")
	flat := md.AddBool("flat", false, "disable all CRT effects")
	printDigest := md.AddBool("digest", false, "print hash of all rendered frames")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("output filename required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *frames < 1 {
		return fmt.Errorf("at least one frame must be rendered")
	}

	crtPrefs, err := c.apply()
	if err != nil {
		return err
	}

	cfg := crt.Flat()
	if !*flat {
		cfg, err = crtPrefs.Snapshot()
		if err != nil {
			return err
		}
	}

	var pngW, pngH int
	if *scale > 0 {
		pngW = int(float64(*width) * *scale)
		pngH = int(float64(*height) * *scale)
	}

	img := headless.NewPNG(pngW, pngH)
	dig := digest.NewFrames()
	dig.Forward(img)
	host := headless.NewHost(dig)

	ses, err := session.NewSession(host, session.Settings{
		Effect:   cfg,
		FontFace: crtPrefs.FontFace.String(),
		FontSize: crtPrefs.FontSize.Get().(float64),
		Width:    *width,
		Height:   *height,
		ZeroSeed: true,
	})
	if err != nil {
		return err
	}
	defer ses.Dispose()

	demo.New(ses.Screen).Draw()

	if err := ses.Driver.Start(); err != nil {
		return err
	}
	host.Run(*frames, 1.0/60)

	if err := ses.Driver.Err(); err != nil {
		return err
	}

	if err := img.Save(md.GetArg(0)); err != nil {
		return err
	}

	if *printDigest {
		fmt.Println(dig.Hash())
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	c := addCommon(md)
	width := md.AddInt("width", 640, "width of viewport in pixels")
	height := md.AddInt("height", 400, "height of viewport in pixels")
	flat := md.AddBool("flat", false, "disable all CRT effects")
	duration := md.AddString("duration", "5s", "run duration (not including a two second leadtime)")
	profile := md.AddString("profile", "none", "create profile for the run: cpu, mem (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 0 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	crtPrefs, err := c.apply()
	if err != nil {
		return err
	}

	cfg := crt.Flat()
	if !*flat {
		cfg, err = crtPrefs.Snapshot()
		if err != nil {
			return err
		}
	}

	host := headless.NewHost(headless.NewPNG(0, 0))

	ses, err := session.NewSession(host, session.Settings{
		Effect:   cfg,
		FontFace: crtPrefs.FontFace.String(),
		FontSize: crtPrefs.FontSize.Get().(float64),
		Width:    *width,
		Height:   *height,
	})
	if err != nil {
		return err
	}
	defer ses.Dispose()

	demo.New(ses.Screen).Draw()

	if err := ses.Driver.Start(); err != nil {
		return err
	}

	return performance.Check(md.Output, prf, host, *duration)
}
