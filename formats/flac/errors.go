// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	ErrNotFlacFile         = errors.New("not a FLAC stream")
	ErrUnsupportedBitDepth = errors.New("unsupported FLAC bit depth")
	ErrTooManyChannels     = errors.New("FLAC supports at most 8 channels")
	ErrInvalidBlockSize    = errors.New("FLAC block size must be between 16 and 65535")
	ErrNoChannels          = errors.New("FLAC stream has no channels")
)
