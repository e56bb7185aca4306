// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/utils"
	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"
	libopus "gopkg.in/hraban/opus.v2"
)

const (
	// SampleRate is the only rate the encoder runs at; other sources are
	// resampled first.
	SampleRate = 48000

	DefaultFrameMs = 20

	// preSkip matches the pre-skip oggwriter puts in the OpusHead page. The
	// encoder feeds that many zero samples ahead of the audio so decoders
	// that honor pre-skip start on the first real sample.
	preSkip = 3840

	maxPacket = 4000
	maxIdle   = 64
)

// Encoder writes Ogg Opus. Sources with more than two channels are mixed
// down to mono and every source is resampled to 48 kHz.
type Encoder struct {
	// Bitrate in bits per second; zero keeps 64 kbps per channel.
	Bitrate int
	// FrameMs is the packet duration; zero means DefaultFrameMs.
	FrameMs int
	Logger  *slog.Logger
}

// writer hides Close from oggwriter, which closes io.Closer destinations.
type writer struct {
	io.Writer
}

func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frameMs := e.FrameMs
	if frameMs == 0 {
		frameMs = DefaultFrameMs
	}
	switch frameMs {
	case 10, 20, 40, 60:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidFrameLength, frameMs)
	}

	if src.Channels() < 1 {
		return ErrNoChannels
	}
	if src.Channels() > 2 {
		logger.Warn("mixing down to mono for opus", "channels", src.Channels())
		src = audio.NewMonoMixer(src)
	}
	if src.SampleRate() != SampleRate {
		logger.Debug("resampling for opus", "from", src.SampleRate(), "to", SampleRate)
		rs, err := audio.NewResamplerChecked(src, SampleRate)
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		src = rs
	}

	channels := src.Channels()
	enc, err := libopus.NewEncoder(SampleRate, channels, libopus.AppAudio)
	if err != nil {
		return fmt.Errorf("creating opus encoder: %w", err)
	}

	bitrate := e.Bitrate
	if bitrate == 0 {
		bitrate = 64000 * channels
	}
	if err := enc.SetBitrate(bitrate); err != nil {
		return fmt.Errorf("setting opus bitrate %d: %w", bitrate, err)
	}

	ogg, err := oggwriter.NewWith(writer{w}, SampleRate, uint16(channels))
	if err != nil {
		return fmt.Errorf("writing ogg headers: %w", err)
	}

	frameSize := SampleRate / 1000 * frameMs
	buf := make([]float32, frameSize*channels)
	pcm := make([]int16, len(buf))
	packet := make([]byte, maxPacket)

	lead := preSkip
	var granule uint64
	for seq := uint16(0); ; seq++ {
		n := 0
		if lead > 0 {
			// zero lead-in, already in buf
			n = min(lead, frameSize) * channels
			clear(buf[:n])
			lead -= n / channels
		}

		got, eof, err := fill(src, buf[n:])
		if err != nil {
			return err
		}
		n += got

		frames := n / channels
		if frames == 0 && eof {
			break
		}

		for i := range pcm {
			if i < n {
				pcm[i] = utils.FloatToInt16(buf[i])
			} else {
				pcm[i] = 0
			}
		}

		size, err := enc.Encode(pcm, packet)
		if err != nil {
			return fmt.Errorf("encoding opus packet: %w", err)
		}

		// oggwriter derives each page's granule position from the RTP
		// timestamp delta, starting from 1
		granule += uint64(frames)
		ts := uint32(granule - 1)
		if seq == 0 {
			ts = 0
		}

		err = ogg.WriteRTP(&rtp.Packet{
			Header:  rtp.Header{SequenceNumber: seq, Timestamp: ts},
			Payload: packet[:size],
		})
		if err != nil {
			return fmt.Errorf("writing ogg page: %w", err)
		}

		if eof {
			break
		}
	}

	if err := ogg.Close(); err != nil {
		return fmt.Errorf("finalizing ogg stream: %w", err)
	}

	return nil
}

// fill reads until buf is full or the source ends, returning a whole number
// of frames.
func fill(src audio.Source, buf []float32) (int, bool, error) {
	n, idle := 0, 0
	for n < len(buf) {
		got, err := src.ReadSamples(buf[n:])
		n += got

		if err == io.EOF {
			return n - n%src.Channels(), true, nil
		}
		if err != nil {
			return n, false, fmt.Errorf("reading source: %w", err)
		}

		if got == 0 {
			idle++
			if idle >= maxIdle {
				return n - n%src.Channels(), true, nil
			}
			continue
		}
		idle = 0
	}

	return n, false, nil
}
