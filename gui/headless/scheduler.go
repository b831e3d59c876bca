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

package headless

import (
	"maps"
	"slices"
)

// Scheduler implements the driver.Scheduler interface. Requested frames are
// run by calling Step().
type Scheduler struct {
	pending map[int]func(float64)
	nextID  int
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[int]func(float64)),
	}
}

// RequestFrame implements the driver.Scheduler interface.
func (sch *Scheduler) RequestFrame(f func(now float64)) func() {
	id := sch.nextID
	sch.nextID++
	sch.pending[id] = f
	return func() {
		delete(sch.pending, id)
	}
}

// Pending returns the number of outstanding frame requests.
func (sch *Scheduler) Pending() int {
	return len(sch.pending)
}

// Step runs every outstanding frame request with the supplied time. Frame
// requests made during the step are not run until the next call to Step().
// Returns the number of requests that were run.
func (sch *Scheduler) Step(now float64) int {
	p := sch.pending
	sch.pending = make(map[int]func(float64))

	// run in request order
	for _, id := range slices.Sorted(maps.Keys(p)) {
		p[id](now)
	}
	return len(p)
}

// Run steps the scheduler the number of times specified, starting at time
// zero and advancing by the interval each time. Stops early if there are no
// outstanding frame requests. Returns the number of steps taken.
func (sch *Scheduler) Run(steps int, interval float64) int {
	for i := range steps {
		if sch.Step(float64(i)*interval) == 0 {
			return i
		}
	}
	return steps
}
