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
	"time"

	"github.com/go-audio/audio"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/gui/sound"
	"github.com/jetsetilly/crtterm/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// BellError is the sentinal error pattern for bell failures.
const BellError = "bell: %v"

// the default bell sound
const (
	bellFrequency = 880.0
	bellDuration  = 120 * time.Millisecond
	bellVolume    = 0.25
)

// number of samples in the SDL audio buffer. the bell is a short sound
// so a small buffer keeps the latency low
const bellBufferLength = 512

type bell struct {
	id  sdl.AudioDeviceID
	pcm []byte
}

func newBell(buf *audio.IntBuffer) (*bell, error) {
	spec := &sdl.AudioSpec{
		Freq:     int32(buf.Format.SampleRate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  bellBufferLength,
	}

	var actualSpec sdl.AudioSpec

	id, err := sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf(BellError, err)
	}
	sdl.PauseAudioDevice(id, false)

	return &bell{
		id:  id,
		pcm: sound.PCM16(buf),
	}, nil
}

// ring queues the bell sound. a bell that is still sounding is not restarted.
func (b *bell) ring() error {
	if sdl.GetQueuedAudioSize(b.id) > 0 {
		return nil
	}
	return sdl.QueueAudio(b.id, b.pcm)
}

func (b *bell) destroy() {
	sdl.ClearQueuedAudio(b.id)
	sdl.CloseAudioDevice(b.id)
}

// LoadBell replaces the bell sound with the contents of a WAV or MP3 file. An
// empty filename selects the default synthesized tone.
func (s *SDL) LoadBell(filename string) error {
	var buf *audio.IntBuffer

	if filename == "" {
		buf = sound.Tone(bellFrequency, bellDuration, bellVolume)
	} else {
		var err error
		buf, err = sound.Load(filename)
		if err != nil {
			return curated.Errorf(BellError, err)
		}
	}

	b, err := newBell(buf)
	if err != nil {
		return err
	}

	if s.bell != nil {
		s.bell.destroy()
	}
	s.bell = b

	return nil
}

// RingBell sounds the bell. Does nothing if there is no audio device.
func (s *SDL) RingBell() {
	if s.bell == nil {
		return
	}
	if err := s.bell.ring(); err != nil {
		logger.Log(logger.Allow, logTag, curated.Errorf(BellError, err))
	}
}
