// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"io"
	"testing"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	length       int64
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return m.length }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := copy(buf, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func newTestSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not Ogg Vorbis data")))
	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte{}))
	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, length: 1234})

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.Frames() != 1234 {
		t.Errorf("Frames() = %d, want 1234", src.Frames())
	}

	unknown := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2})
	if unknown.Frames() != -1 {
		t.Errorf("Frames() = %d, want -1 for unknown length", unknown.Frames())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	input := []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}
	src := newTestSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2, samples: input})

	dst := make([]float32, 5) // rounds down to two stereo frames
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}
	for i := range n {
		if dst[i] != input[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], input[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 2 || err != nil {
		t.Errorf("second ReadSamples() = %d, %v, want 2, nil", n, err)
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("final ReadSamples() = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 48000, channels: 1, returnErrors: true})

	_, err := src.ReadSamples(make([]float32, 8))
	if err == nil || err == io.EOF {
		t.Errorf("ReadSamples() error = %v, want decode failure", err)
	}
}
