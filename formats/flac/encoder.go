// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"
)

const (
	DefaultBitDepth  = 16
	DefaultBlockSize = 4096

	maxChannels = 8
	maxIdle     = 64

	// offset of the STREAMINFO block size fields: "fLaC" plus the block header
	blockSizeOffset = 8
)

// Encoder writes lossless FLAC using verbatim subframes.
type Encoder struct {
	// BitDepth is 16 or 24; zero means DefaultBitDepth.
	BitDepth int
	// BlockSize is the number of frames per FLAC frame; zero means
	// DefaultBlockSize.
	BlockSize int
}

// writer hides Close from flac.Encoder, which would otherwise close the
// destination the caller owns.
type writer struct {
	io.WriteSeeker
}

func (e Encoder) Encode(w io.WriteSeeker, src audio.Source) error {
	bitDepth := e.BitDepth
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	blockSize := e.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}
	if blockSize < 16 || blockSize > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	channels := src.Channels()
	switch {
	case channels < 1:
		return ErrNoChannels
	case channels > maxChannels:
		return fmt.Errorf("%w: got %d", ErrTooManyChannels, channels)
	}

	var total uint64
	if sized, ok := src.(audio.Sized); ok && sized.Frames() > 0 {
		total = uint64(sized.Frames())
	}

	info := &meta.StreamInfo{
		BlockSizeMin:  uint16(blockSize),
		BlockSizeMax:  uint16(blockSize),
		SampleRate:    uint32(src.SampleRate()),
		NChannels:     uint8(channels),
		BitsPerSample: uint8(bitDepth),
		NSamples:      total,
	}

	enc, err := flac.NewEncoder(writer{w}, info)
	if err != nil {
		return fmt.Errorf("creating flac encoder: %w", err)
	}

	subframes := make([]*frame.Subframe, channels)
	for ch := range subframes {
		subframes[ch] = &frame.Subframe{
			SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
			Samples:   make([]int32, blockSize),
		}
	}

	buf := make([]float32, blockSize*channels)
	for num := uint64(0); ; num++ {
		n, eof, err := fill(src, buf)
		if err != nil {
			return err
		}

		frames := n / channels
		if frames > 0 {
			for ch, sub := range subframes {
				// WriteFrame's prediction analysis rewrites the header; a
				// stale predictor order can exceed a short tail block.
				sub.SubHeader = frame.SubHeader{Pred: frame.PredVerbatim}
				sub.Samples = sub.Samples[:frames]
				sub.NSamples = frames
				for i := range frames {
					sub.Samples[i] = int32(utils.FloatToInt(buf[i*channels+ch], bitDepth))
				}
			}

			f := &frame.Frame{
				Header: frame.Header{
					HasFixedBlockSize: true,
					BlockSize:         uint16(frames),
					SampleRate:        info.SampleRate,
					Channels:          frame.Channels(channels - 1),
					BitsPerSample:     uint8(bitDepth),
					Num:               num,
				},
				Subframes: subframes,
			}
			if err := enc.WriteFrame(f); err != nil {
				return fmt.Errorf("writing flac frame: %w", err)
			}
		}

		if eof || frames < blockSize {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing flac stream: %w", err)
	}

	return restoreBlockSize(w, uint16(blockSize))
}

// restoreBlockSize rewrites the STREAMINFO block size bounds with the
// configured size. flac.Encoder.Close records the sizes it actually saw, so
// a stream shorter than 16 frames, or one whose tail frame is, ends up with
// bounds that decoders reject. The short tail frame is still legal.
func restoreBlockSize(w io.WriteSeeker, blockSize uint16) error {
	if _, err := w.Seek(blockSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("seeking to streaminfo: %w", err)
	}

	var b [4]byte
	binary.BigEndian.PutUint16(b[0:], blockSize)
	binary.BigEndian.PutUint16(b[2:], blockSize)
	if _, err := w.Write(b[:]); err != nil {
		return fmt.Errorf("writing streaminfo block size: %w", err)
	}

	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seeking to end: %w", err)
	}

	return nil
}

// fill reads until buf holds a whole block or the source ends.
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
