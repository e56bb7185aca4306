// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/ik5/soundbuffer/audio"
	"github.com/mewkiz/flac"
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	channels := int(info.NChannels)
	if channels < 1 {
		return nil, ErrNoChannels
	}

	bitDepth := int(info.BitsPerSample)
	if bitDepth < 4 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	frames := -1
	if info.NSamples > 0 {
		frames = int(info.NSamples)
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   channels,
		frames:     frames,
		scale:      1 / float32(uint64(1)<<(bitDepth-1)),
		blockSize:  int(info.BlockSizeMax),
	}, nil
}

// source delivers one decoded FLAC frame at a time, keeping whatever the
// caller's buffer could not hold for the next read.
type source struct {
	stream     *flac.Stream
	sampleRate int
	channels   int
	frames     int
	scale      float32
	blockSize  int

	pending []float32
	block   []float32
	decoded int
	done    bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Frames() int     { return s.frames }

// Close is a no-op; the caller owns the reader passed to Decode.
func (s *source) Close() error { return nil }

func (s *source) BufSize() int {
	if s.blockSize > 0 {
		return s.blockSize * s.channels
	}
	return 4096 * s.channels
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	dst = dst[:len(dst)-len(dst)%s.channels]
	if len(dst) == 0 {
		return 0, nil
	}

	n := 0
	for n < len(dst) {
		if len(s.pending) > 0 {
			c := copy(dst[n:], s.pending)
			s.pending = s.pending[c:]
			n += c
			continue
		}

		if s.done {
			if s.frames > 0 && s.decoded < s.frames {
				return n, fmt.Errorf("%w: %d of %d frames", audio.ErrTruncated, s.decoded, s.frames)
			}
			return n, io.EOF
		}

		if err := s.decodeFrame(); err != nil {
			if err == io.EOF {
				s.done = true
				continue
			}
			return n, fmt.Errorf("decoding flac frame: %w", err)
		}
	}

	return n, nil
}

func (s *source) decodeFrame() error {
	f, err := s.stream.ParseNext()
	if err != nil {
		return err
	}

	blockSize := int(f.BlockSize)
	need := blockSize * s.channels
	if cap(s.block) < need {
		s.block = make([]float32, need)
	}
	s.block = s.block[:need]

	for ch := range s.channels {
		samples := f.Subframes[ch].Samples
		for i := range blockSize {
			s.block[i*s.channels+ch] = float32(samples[i]) * s.scale
		}
	}
	s.pending = s.block
	s.decoded += blockSize

	return nil
}
