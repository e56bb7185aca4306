// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"io"

	"github.com/ik5/soundbuffer/audio"
)

// Reader streams the buffer as interleaved float32 samples. The buffer
// must not be modified while the reader is in use.
func (b *SoundBuffer) Reader() audio.Source {
	return &bufferSource{buf: b}
}

type bufferSource struct {
	buf *SoundBuffer
	pos int
}

var _ audio.Sized = (*bufferSource)(nil)

func (s *bufferSource) SampleRate() int { return s.buf.samplerate }
func (s *bufferSource) Channels() int   { return s.buf.channels }
func (s *bufferSource) BufSize() int    { return 4096 * s.buf.channels }
func (s *bufferSource) Frames() int     { return s.buf.Len() }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	remaining := s.buf.samples[s.pos:]
	if len(remaining) == 0 {
		return 0, io.EOF
	}

	n := min(len(dst)-len(dst)%s.buf.channels, len(remaining))
	for i, v := range remaining[:n] {
		dst[i] = float32(v)
	}
	s.pos += n

	return n, nil
}
