// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import "fmt"

// Config selects how New builds a buffer. The variants are Empty,
// WithLength, FromSource and FromSourceResized.
type Config interface {
	isConfig()
}

// Empty builds a zero-length buffer at the default rate and channels.
type Empty struct{}

// WithLength builds Frames frames of silence at the default rate and
// channels.
type WithLength struct {
	Frames int
}

// FromSource decodes Path, adopting its rate and channel count.
type FromSource struct {
	Path string
}

// FromSourceResized decodes Path and resizes the result to Frames.
type FromSourceResized struct {
	Path   string
	Frames int
}

func (Empty) isConfig()             {}
func (WithLength) isConfig()        {}
func (FromSource) isConfig()        {}
func (FromSourceResized) isConfig() {}

// New builds a buffer from cfg. A nil cfg is treated as Empty.
func New(cfg Config, opts ...Option) (*SoundBuffer, error) {
	switch c := cfg.(type) {
	case nil, Empty:
		return NewZeroed(0, DefaultChannels, DefaultSampleRate)

	case WithLength:
		return NewZeroed(c.Frames, DefaultChannels, DefaultSampleRate)

	case FromSource:
		return Load(c.Path, opts...)

	case FromSourceResized:
		if c.Frames < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, c.Frames)
		}
		b, err := Load(c.Path, opts...)
		if err != nil {
			return nil, err
		}
		return b.Resize(c.Frames)

	default:
		return nil, fmt.Errorf("unknown config %T", cfg)
	}
}
