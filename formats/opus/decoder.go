// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/internal/oggpacket"
	"github.com/pion/webrtc/v4/pkg/media/oggreader"
	libopus "gopkg.in/hraban/opus.v2"
)

// maxFrameSize is 120 ms at 48 kHz, the longest Opus packet.
const maxFrameSize = 5760

var (
	opusHead = []byte("OpusHead")
	opusTags = []byte("OpusTags")
)

// Decoder reads single-stream Ogg Opus. Pages may carry any number of
// packets and packets may span pages. Output is always 48 kHz.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	packets, err := oggpacket.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}

	first, err := packets.Next()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}
	if !first.BOS || !bytes.HasPrefix(first.Data, opusHead) {
		return nil, ErrNotOpusFile
	}

	header, err := oggreader.ParseOpusHead(first.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOpusFile, err)
	}

	channels := int(header.Channels)
	switch {
	case channels < 1:
		return nil, ErrNoChannels
	case channels > 2:
		return nil, fmt.Errorf("%w: got %d", ErrTooManyChannels, channels)
	}

	dec, err := libopus.NewDecoder(SampleRate, channels)
	if err != nil {
		return nil, fmt.Errorf("creating opus decoder: %w", err)
	}

	s := &source{
		packets:  packets,
		dec:      dec,
		channels: channels,
		skip:     int(header.PreSkip),
		pcm:      make([]float32, maxFrameSize*channels),
	}
	s.fetch()

	return s, nil
}

// source decodes a packet ahead so the final packet can be trimmed to the
// last page's granule position.
type source struct {
	packets  *oggpacket.Reader
	dec      *libopus.Decoder
	channels int
	skip     int
	decoded  uint64

	next    oggpacket.Packet
	nextErr error

	pcm     []float32
	pending []float32
}

func (s *source) SampleRate() int { return SampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 960 * s.channels }

// Frames is always -1; the length is only known after the last page.
func (s *source) Frames() int { return -1 }

func (s *source) Close() error { return nil }

func (s *source) fetch() {
	for {
		p, err := s.packets.Next()
		if err != nil {
			s.next, s.nextErr = oggpacket.Packet{}, err
			return
		}
		if len(p.Data) == 0 || bytes.HasPrefix(p.Data, opusTags) {
			continue
		}
		s.next, s.nextErr = p, nil
		return
	}
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

		if err := s.decodePacket(); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return n, io.EOF
			}
			return n, fmt.Errorf("%w", err)
		}
	}

	return n, nil
}

func (s *source) decodePacket() error {
	if s.nextErr != nil {
		return s.nextErr
	}

	p := s.next
	s.fetch()

	frames, err := s.dec.DecodeFloat32(p.Data, s.pcm)
	if err != nil {
		return fmt.Errorf("decoding opus packet: %w", err)
	}

	last := s.nextErr != nil
	if last && p.Granule != oggpacket.NoGranule {
		if p.Granule <= s.decoded {
			frames = 0
		} else {
			frames = min(frames, int(p.Granule-s.decoded))
		}
	}
	s.decoded += uint64(frames)

	data := s.pcm[:frames*s.channels]
	if s.skip > 0 {
		d := min(s.skip, frames)
		data = data[d*s.channels:]
		s.skip -= d
	}
	s.pending = data

	return nil
}
