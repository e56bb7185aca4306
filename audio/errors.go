// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	// ErrTruncated is returned when a stream ends before the length its
	// header declared.
	ErrTruncated = errors.New("stream shorter than declared length")
)
