// SPDX-License-Identifier: EPL-2.0

package codecs

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/soundbuffer/formats/flac"
	"github.com/ik5/soundbuffer/formats/opus"
	"github.com/ik5/soundbuffer/formats/wav"
	"gopkg.in/yaml.v3"
)

// EncodeOptions tunes the encoders registered by [New]. Zero fields fall
// back to each encoder's default.
type EncodeOptions struct {
	WAVBitDepth   int `yaml:"wav_bit_depth"`
	AIFFBitDepth  int `yaml:"aiff_bit_depth"`
	FLACBitDepth  int `yaml:"flac_bit_depth"`
	FLACBlockSize int `yaml:"flac_block_size"`
	OpusBitrate   int `yaml:"opus_bitrate"`
	OpusFrameMs   int `yaml:"opus_frame_ms"`
}

func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		WAVBitDepth:   wav.DefaultBitDepth,
		AIFFBitDepth:  16,
		FLACBitDepth:  flac.DefaultBitDepth,
		FLACBlockSize: flac.DefaultBlockSize,
		OpusFrameMs:   opus.DefaultFrameMs,
	}
}

// LoadEncodeOptionsFile reads YAML encode options from path.
func LoadEncodeOptionsFile(path string) (EncodeOptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return EncodeOptions{}, fmt.Errorf("codecs: open %q: %w", path, err)
	}
	defer f.Close()

	opts, err := LoadEncodeOptions(f)
	if err != nil {
		return EncodeOptions{}, fmt.Errorf("codecs: parse %q: %w", path, err)
	}
	return opts, nil
}

// LoadEncodeOptions decodes YAML over DefaultEncodeOptions and validates
// the result. Unknown keys are rejected and empty input yields the defaults.
func LoadEncodeOptions(r io.Reader) (EncodeOptions, error) {
	opts := DefaultEncodeOptions()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return EncodeOptions{}, fmt.Errorf("codecs: decode yaml: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return EncodeOptions{}, err
	}
	return opts, nil
}

// Validate returns a joined error listing every invalid field.
func (o EncodeOptions) Validate() error {
	var errs []error

	switch o.WAVBitDepth {
	case 0, 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("wav_bit_depth %d is invalid; valid values: 16, 24, 32", o.WAVBitDepth))
	}

	switch o.AIFFBitDepth {
	case 0, 8, 16, 24, 32:
	default:
		errs = append(errs, fmt.Errorf("aiff_bit_depth %d is invalid; valid values: 8, 16, 24, 32", o.AIFFBitDepth))
	}

	switch o.FLACBitDepth {
	case 0, 16, 24:
	default:
		errs = append(errs, fmt.Errorf("flac_bit_depth %d is invalid; valid values: 16, 24", o.FLACBitDepth))
	}

	if o.FLACBlockSize != 0 && (o.FLACBlockSize < 16 || o.FLACBlockSize > 65535) {
		errs = append(errs, fmt.Errorf("flac_block_size %d is out of range [16, 65535]", o.FLACBlockSize))
	}

	if o.OpusBitrate != 0 && (o.OpusBitrate < 6000 || o.OpusBitrate > 510000) {
		errs = append(errs, fmt.Errorf("opus_bitrate %d is out of range [6000, 510000]", o.OpusBitrate))
	}

	switch o.OpusFrameMs {
	case 0, 10, 20, 40, 60:
	default:
		errs = append(errs, fmt.Errorf("opus_frame_ms %d is invalid; valid values: 10, 20, 40, 60", o.OpusFrameMs))
	}

	return errors.Join(errs...)
}
