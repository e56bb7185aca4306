// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/utils"
)

// DefaultBitDepth is used when Encoder.BitDepth is zero.
const DefaultBitDepth = 16

// Encoder writes integer PCM WAV files. Samples outside [-1, 1] are clipped.
type Encoder struct {
	// BitDepth is 16, 24 or 32; zero means DefaultBitDepth.
	BitDepth int
}

func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	bitDepth := e.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	if channels < 1 {
		return ErrNoChannels
	}

	enc := wav.NewEncoder(w, src.SampleRate(), bitDepth, channels, formatPCM)

	const chunkFrames = 4096
	buf := make([]float32, chunkFrames*channels)
	intBuf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: bitDepth,
		Data:           make([]int, len(buf)),
	}

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			intBuf.Data = intBuf.Data[:n]
			for i, x := range buf[:n] {
				intBuf.Data[i] = utils.FloatToInt(x, bitDepth)
			}
			if werr := enc.Write(intBuf); werr != nil {
				return fmt.Errorf("writing wav data: %w", werr)
			}
		}

		if err == io.EOF || n == 0 && err == nil {
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}

	return nil
}
