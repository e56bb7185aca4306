// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	ErrNotOpusFile        = errors.New("not an Ogg Opus stream")
	ErrTooManyChannels    = errors.New("only mono and stereo Opus streams are supported")
	ErrInvalidFrameLength = errors.New("opus frame length must be 10, 20, 40 or 60 ms")
	ErrNoChannels         = errors.New("source has no channels")
)
