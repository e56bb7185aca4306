// SPDX-License-Identifier: EPL-2.0

package soundbuffer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/ik5/soundbuffer/audio"
	"golang.org/x/sync/errgroup"
)

// Load decodes the file at path with the codec registered for its
// extension and adopts the file's sample rate and channel count.
func Load(path string, opts ...Option) (*SoundBuffer, error) {
	o := newOptions(opts)
	format := audio.FormatOf(path)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	dec, ok := o.registry.Decoder(format)
	if !ok {
		return nil, fmt.Errorf("%w: cannot decode %q", ErrUnsupportedFormat, format)
	}

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer src.Close()

	channels, rate := src.Channels(), src.SampleRate()
	if err := checkDimensions(0, channels, rate); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	raw, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	b := &SoundBuffer{
		samples:    make([]float64, len(raw)),
		channels:   channels,
		samplerate: rate,
	}
	for i, v := range raw {
		b.samples[i] = float64(v)
	}

	o.logger.Debug("loaded sound",
		"path", path,
		"format", format,
		"frames", b.Len(),
		"channels", channels,
		"samplerate", rate,
	)

	return b, nil
}

// Write encodes the buffer to path in the format named by its extension.
// The buffer itself never clips; codecs with bounded sample formats do.
// On failure the partially written file is removed.
func (b *SoundBuffer) Write(path string, opts ...Option) error {
	return b.write(path, newOptions(opts))
}

func (b *SoundBuffer) write(path string, o *options) (err error) {
	format := audio.FormatOf(path)
	enc, ok := o.registry.Encoder(format)
	if !ok {
		return fmt.Errorf("%w: cannot encode %q", ErrUnsupportedFormat, format)
	}

	if peak := b.Peak(); peak > 1 {
		o.logger.Warn("samples exceed full scale and will be clipped by the codec",
			"path", path,
			"peak", peak,
		)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrEncode, path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := enc.Encode(f, b.Reader()); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
	}

	o.logger.Debug("wrote sound",
		"path", path,
		"format", format,
		"frames", b.Len(),
		"channels", b.channels,
		"samplerate", b.samplerate,
	)

	return nil
}

// WriteAll writes the buffer to every path concurrently and returns the
// first error. Remaining writes are skipped once ctx is done or a write
// fails.
func (b *SoundBuffer) WriteAll(ctx context.Context, paths []string, opts ...Option) error {
	o := newOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrEncode, path, err)
			}
			return b.write(path, o)
		})
	}

	return g.Wait()
}
