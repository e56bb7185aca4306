// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/utils"
)

// Encoder writes big-endian PCM AIFF files, clipping samples to [-1, 1].
type Encoder struct {
	// BitDepth is 8, 16, 24 or 32; zero means 16.
	BitDepth int
}

func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	bitDepth := e.BitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	if channels < 1 {
		return ErrUnsupportedAiffLayout
	}

	enc := aiff.NewEncoder(w, src.SampleRate(), bitDepth, channels)

	buf := make([]float32, 4096*channels)
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
				return fmt.Errorf("writing aiff data: %w", werr)
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
		return fmt.Errorf("finalizing aiff header: %w", err)
	}

	return nil
}
