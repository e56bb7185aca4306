// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/internal/pcm"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// WAVE_FORMAT_EXTENSIBLE fmt chunk: the SubFormat GUID starts at byte
	// 24 and its first two bytes carry the format code.
	extensibleFmtSize = 40
	subFormatOffset   = 24
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch dec.WavAudioFormat {
	case formatPCM:
	case formatExtensible:
		// go-audio does not expose the SubFormat; read it from the fmt
		// chunk directly.
		code, err := subFormat(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
		if code != formatPCM {
			return nil, fmt.Errorf("%w: extensible subformat 0x%04x", ErrOnlyPCMSupported, code)
		}
		// Rewind re-reads the header and forwards to the PCM chunk
		if err := dec.Rewind(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
	default:
		return nil, fmt.Errorf("%w: format 0x%04x", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := int(dec.NumChans)
	if channels < 1 {
		return nil, ErrNoChannels
	}

	if dec.PCMChunk == nil {
		if err := dec.FwdToPCM(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
	}

	frames := dec.PCMSize / (channels * bitDepth / 8)

	return pcm.NewSource(dec, bitDepth, frames, true), nil
}

// subFormat returns the format code of the SubFormat GUID of an extensible
// fmt chunk.
func subFormat(rs io.ReadSeeker) (uint16, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("fmt chunk not found: %w", err)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}
		if ch.Size < extensibleFmtSize {
			return 0, fmt.Errorf("extensible fmt chunk of %d bytes", ch.Size)
		}

		var body [extensibleFmtSize]byte
		if _, err := io.ReadFull(ch, body[:]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint16(body[subFormatOffset:]), nil
	}
}
