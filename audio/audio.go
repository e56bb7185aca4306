// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples, nominally in [-1,1]
	// but not clamped. Returns number of float32 values written (not frames).
	// When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Sized is a Source that may know its total length in frames up front.
// Frames returns -1 when the length is unknown.
type Sized interface {
	Source
	Frames() int
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder drains src and writes it to w in a container format.
// Encoders do not close w.
type Encoder interface {
	Encode(w io.WriteSeeker, src Source) error
}

// Codec pairs the decoder and encoder registered for one format key.
// Either side may be nil.
type Codec struct {
	Decoder Decoder
	Encoder Encoder
}

// Registry of codecs by format key (a file extension such as "wav" or "ogg").
// Keys are case-insensitive and a leading dot is ignored.
type Registry struct {
	codecs map[string]Codec

	mtx *sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Codec),
		mtx:    &sync.RWMutex{},
	}
}

// NormalizeFormat turns ".WAV" into "wav".
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(format, "."))
}

// FormatOf returns the normalized format key of a file path.
func FormatOf(path string) string {
	return NormalizeFormat(filepath.Ext(path))
}

// Register sets both sides of a format at once.
func (r *Registry) Register(format string, d Decoder, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[NormalizeFormat(format)] = Codec{Decoder: d, Encoder: e}
}

func (r *Registry) RegisterDecoder(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := NormalizeFormat(format)
	c := r.codecs[key]
	c.Decoder = d
	r.codecs[key] = c
}

func (r *Registry) RegisterEncoder(format string, e Encoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	key := NormalizeFormat(format)
	c := r.codecs[key]
	c.Encoder = e
	r.codecs[key] = c
}

func (r *Registry) Decoder(format string) (Decoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	c, ok := r.codecs[NormalizeFormat(format)]
	if !ok || c.Decoder == nil {
		return nil, false
	}
	return c.Decoder, true
}

func (r *Registry) Encoder(format string) (Encoder, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	c, ok := r.codecs[NormalizeFormat(format)]
	if !ok || c.Encoder == nil {
		return nil, false
	}
	return c.Encoder, true
}

// Formats lists every registered format key in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
