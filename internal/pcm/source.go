// SPDX-License-Identifier: EPL-2.0

// Package pcm adapts go-audio integer PCM decoders (WAV, AIFF) to the
// float32 audio.Source contract.
package pcm

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/utils"
)

// Reader is the part of the go-audio wav and aiff decoders a Source needs.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source wraps a Reader and normalizes its integer samples.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	// samples delivered so far
	read int
	// 8-bit WAV data is unsigned and centred on 128
	unsigned8 bool
	intBuf    *goaudio.IntBuffer
}

// NewSource builds a Source. frames is the total length if known, -1 otherwise.
func NewSource(dec Reader, bitDepth, frames int, unsigned8 bool) *Source {
	format := dec.Format()
	return &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		frames:     frames,
		unsigned8:  unsigned8 && bitDepth == 8,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Frames() int     { return s.frames }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < want {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, want),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:want]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, s.eof()
	}
	s.read += n

	for i, v := range s.intBuf.Data[:n] {
		if s.unsigned8 {
			v -= 128
		}
		dst[i] = utils.IntToFloat(v, s.bitDepth)
	}

	// A short read with no error means the data chunk is exhausted
	if n < want || err == io.EOF {
		return n, s.eof()
	}

	return n, nil
}

// eof reports io.EOF, or audio.ErrTruncated when the data ended before the
// frame count the header declared. One missing frame is allowed: RIFF rounds
// odd chunk sizes up to a pad byte that some writers never emit.
func (s *Source) eof() error {
	if s.frames > 0 && s.frames-s.read/s.channels > 1 {
		return fmt.Errorf("%w: %d of %d frames", audio.ErrTruncated, s.read/s.channels, s.frames)
	}
	return io.EOF
}
