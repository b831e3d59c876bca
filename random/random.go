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

package random

import (
	"math"
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Random is a random number generator that is sensitive to frame time.
type Random struct {
	// use zero seed rather than the random base seed. this is only really
	// useful for instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{}
}

func (rnd *Random) seed() uint64 {
	if rnd.ZeroSeed {
		return 0
	}
	return uint64(baseSeed)
}

// translate frame time into a single value. time is quantised to the
// microsecond
func timeSum(t float64) int64 {
	return int64(math.Round(t * 1000000))
}

// new RNG from the standard library
func (rnd *Random) rand(t float64) *rand.Rand {
	return rand.New(rand.NewSource(int64(rnd.seed()) + timeSum(t)))
}

// Intn returns a number in the range [0, n) for the frame time.
func (rnd *Random) Intn(t float64, n int) int {
	return rnd.rand(t).Intn(n)
}

// Float64 returns a number in the range [0.0, 1.0) for the frame time.
func (rnd *Random) Float64(t float64) float64 {
	return rnd.rand(t).Float64()
}

// splitmix64 finaliser
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Noise returns a number in the range [0.0, 1.0) for the frame time and the
// pixel coordinates. Noise is much cheaper than Float64 and should be used
// when a number is required for every pixel of a frame.
func (rnd *Random) Noise(t float64, x, y int) float32 {
	h := mix(rnd.seed() + uint64(timeSum(t)))
	h = mix(h ^ uint64(uint32(x)))
	h = mix(h ^ uint64(uint32(y))<<32)
	return float32(h>>40) / float32(1<<24)
}
