// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Guitar describes the stand-in for a one second stereo guitar recording:
// a decaying plucked tone at 44.1 kHz, 16-bit.
const (
	GuitarSampleRate = 44100
	GuitarChannels   = 2
	GuitarFrames     = 44100
)

// GuitarSample returns the value of the synthetic guitar pluck.
func GuitarSample(frame, channel int) float64 {
	t := float64(frame) / GuitarSampleRate
	env := math.Exp(-3 * t)
	tone := 0.6*math.Sin(2*math.Pi*196*t) + 0.25*math.Sin(2*math.Pi*392*t) + 0.1*math.Sin(2*math.Pi*588*t)
	if channel == 1 {
		tone *= 0.8
	}
	return 0.9 * env * tone
}

// WriteGuitarWAV writes the synthetic guitar recording to path as a 16-bit
// PCM WAV file.
func WriteGuitarWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}

	format := &goaudio.Format{NumChannels: GuitarChannels, SampleRate: GuitarSampleRate}
	buf := &goaudio.IntBuffer{
		Format:         format,
		SourceBitDepth: 16,
		Data:           make([]int, GuitarFrames*GuitarChannels),
	}
	for i := range GuitarFrames {
		for c := range GuitarChannels {
			buf.Data[i*GuitarChannels+c] = int(GuitarSample(i, c) * 32767)
		}
	}

	enc := wav.NewEncoder(f, GuitarSampleRate, 16, GuitarChannels, 1)
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("write fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close fixture encoder: %w", err)
	}

	return f.Close()
}
