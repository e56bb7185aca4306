// SPDX-License-Identifier: EPL-2.0

// Package ogg handles the "ogg" extension, whose files may carry either
// Vorbis or Opus. Decoding picks the codec from the identification header.
// Encoding always writes Opus, since no pure-Go Vorbis encoder exists.
package ogg

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/formats/opus"
	"github.com/ik5/soundbuffer/formats/vorbis"
)

// ErrNotOggFile reports input without an Ogg capture pattern.
var ErrNotOggFile = errors.New("not an Ogg stream")

// The identification packet starts right after the first page header,
// which is 27 bytes plus a one byte segment table for a single packet.
const sniffLen = 64

var (
	capturePattern = []byte("OggS")
	opusHead       = []byte("OpusHead")
	vorbisHead     = []byte("\x01vorbis")
)

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading ogg header: %w", err)
	}

	if !bytes.HasPrefix(head, capturePattern) {
		return nil, ErrNotOggFile
	}

	switch {
	case bytes.Contains(head, opusHead):
		return opus.Decoder{}.Decode(br)
	case bytes.Contains(head, vorbisHead):
		return vorbis.Decoder{}.Decode(br)
	default:
		return nil, fmt.Errorf("%w: unknown codec in first page", ErrNotOggFile)
	}
}

// Encoder writes Ogg Opus.
type Encoder = opus.Encoder
