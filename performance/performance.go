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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/logger"
)

// CheckError is the sentinal error pattern for failures during Check().
const CheckError = "performance: %v"

// Leadtime is the amount of time the pipeline runs before measurement
// begins. This allows the frame rate to settle.
var Leadtime = 2 * time.Second

// TargetFPS is the frame rate reported as 100% accuracy.
const TargetFPS = 60.0

// Stepper advances the render loop by one frame. The number of frame
// callbacks that were run is returned. A return value of zero means the
// render loop has stopped.
type Stepper interface {
	Step(now float64) int
}

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage of
// TargetFPS.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / TargetFPS
	return fps, accuracy
}

// Check runs the render loop as fast as possible for the specified duration
// and writes the measured frame rate to output. The now value passed to the
// stepper is the wall clock time since the start of the check so that time
// based effects behave as they would on a display.
func Check(output io.Writer, profile Profile, step Stepper, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	var numFrames int
	var measured time.Duration

	runner := func() error {
		start := time.Now()

		var measuring bool
		var measureStart time.Time

		for {
			elapsed := time.Since(start)

			if !measuring && elapsed >= Leadtime {
				measuring = true
				measureStart = time.Now()
				logger.Logf(logger.Allow, "performance", "leadtime of %v complete", Leadtime)
			}

			if measuring {
				measured = time.Since(measureStart)
				if measured >= dur {
					return nil
				}
			}

			if step.Step(elapsed.Seconds()) == 0 {
				return curated.Errorf(CheckError, "render loop stopped")
			}

			if measuring {
				numFrames++
			}
		}
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return err
	}

	fps, accuracy := CalcFPS(numFrames, measured.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, measured.Seconds(), accuracy)

	return nil
}
