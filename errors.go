// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import "errors"

var (
	ErrInvalidDimension  = errors.New("invalid buffer dimension")
	ErrInvalidLength     = errors.New("invalid length")
	ErrInvalidRange      = errors.New("invalid range")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrUnsupportedWindow = errors.New("unsupported window")
	ErrFileNotFound      = errors.New("sound file not found")
	ErrDecode            = errors.New("decode failed")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEncode            = errors.New("encode failed")
)
