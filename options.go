// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"log/slog"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/codecs"
)

// Option configures Load, New, Write and WriteAll.
type Option func(*options)

type options struct {
	registry *audio.Registry
	logger   *slog.Logger
	encode   codecs.EncodeOptions
}

// WithRegistry replaces the built-in codec registry. Encode options are
// ignored when a registry is supplied.
func WithRegistry(r *audio.Registry) Option {
	return func(o *options) { o.registry = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithEncodeOptions tunes the encoders of the built-in registry.
func WithEncodeOptions(e codecs.EncodeOptions) Option {
	return func(o *options) { o.encode = e }
}

func newOptions(opts []Option) *options {
	o := &options{encode: codecs.DefaultEncodeOptions()}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.registry == nil {
		o.registry = codecs.New(o.encode, o.logger)
	}

	return o
}
