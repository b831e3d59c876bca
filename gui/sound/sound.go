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

package sound

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/crtterm/curated"
	"github.com/jetsetilly/crtterm/logger"
)

const logTag = "sound"

// Sentinal error patterns.
const (
	LoadError         = "sound: %v"
	UnsupportedFormat = "sound: unsupported file type (%s)"
)

// SampleRate of synthesized sounds.
const SampleRate = 44100

// length of the fade at the start and end of a tone
const fade = 5 * time.Millisecond

// Tone returns a sine wave of the given frequency and duration. The volume
// is in the range 0 to 1.
func Tone(freq float64, duration time.Duration, volume float64) *audio.IntBuffer {
	volume = math.Max(0, math.Min(1, volume))

	n := int(duration.Seconds() * SampleRate)
	f := int(fade.Seconds() * SampleRate)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		SourceBitDepth: 16,
		Data:           make([]int, n),
	}

	for i := range n {
		env := 1.0
		if i < f {
			env = float64(i) / float64(f)
		} else if n-i < f {
			env = float64(n-i) / float64(f)
		}
		v := math.Sin(2 * math.Pi * freq * float64(i) / SampleRate)
		buf.Data[i] = int(v * env * volume * math.MaxInt16)
	}

	return buf
}

// Load decodes a WAV or MP3 file. The file type is decided by the filename
// extension. Only the first channel of a multi channel file is kept.
func Load(filename string) (*audio.IntBuffer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".wav" && ext != ".mp3" {
		return nil, curated.Errorf(UnsupportedFormat, ext)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	var buf *audio.IntBuffer

	switch ext {
	case ".wav":
		buf, err = loadWAV(f)
	case ".mp3":
		buf, err = loadMP3(f)
	}
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}

	logger.Logf(logger.Allow, logTag, "%s: %d samples at %dHz", filepath.Base(filename), len(buf.Data), buf.Format.SampleRate)

	return buf, nil
}

func loadWAV(r io.ReadSeeker) (*audio.IntBuffer, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, curated.Errorf("wav: not a valid wav file")
	}

	full, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, curated.Errorf("wav: %v", err)
	}

	numChans := max(1, int(dec.NumChans))

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(dec.SampleRate),
		},
		SourceBitDepth: int(dec.BitDepth),
		Data:           make([]int, 0, len(full.Data)/numChans),
	}

	for i := 0; i < len(full.Data); i += numChans {
		buf.Data = append(buf.Data, full.Data[i])
	}

	return buf, nil
}

func loadMP3(r io.Reader) (*audio.IntBuffer, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	// the decoded stream is always 16bit little endian with two channels
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, curated.Errorf("mp3: %v", err)
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  dec.SampleRate(),
		},
		SourceBitDepth: 16,
		Data:           make([]int, 0, len(data)/4),
	}

	// left channel only
	for i := 0; i+1 < len(data); i += 4 {
		buf.Data = append(buf.Data, int(int16(uint16(data[i])|uint16(data[i+1])<<8)))
	}

	return buf, nil
}

// PCM16 returns the first channel of the buffer as signed 16 bit little
// endian samples.
func PCM16(buf *audio.IntBuffer) []byte {
	if buf == nil || buf.Format == nil {
		return nil
	}

	numChans := max(1, buf.Format.NumChannels)
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}

	out := make([]byte, 0, len(buf.Data)/numChans*2)
	for i := 0; i < len(buf.Data); i += numChans {
		v := buf.Data[i]

		switch {
		case depth == 8:
			// eight bit samples are unsigned
			v = (v - 128) << 8
		case depth > 16:
			v >>= depth - 16
		case depth < 16:
			v <<= 16 - depth
		}

		v = max(math.MinInt16, min(math.MaxInt16, v))
		out = append(out, byte(v), byte(v>>8))
	}

	return out
}
