// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/internal/audiotest"
)

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte("This is not AIFF data")))

	if err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	decoder := Decoder{}
	_, err := decoder.Decode(bytes.NewReader([]byte{}))

	if err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestEncoder_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	err = Encoder{BitDepth: 12}.Encode(f, audiotest.NewSilentSource(8000, 1, 10))
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ramp.aiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	src := audiotest.NewMockSource(22050, 2, 500, func(frame, channel int) float32 {
		return float32(frame%100)/100 - 0.5*float32(channel)
	})
	if err := (Encoder{}).Encode(f, src); err != nil {
		f.Close()
		t.Fatalf("Encode() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()

	decoded, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.SampleRate() != 22050 || decoded.Channels() != 2 {
		t.Fatalf("decoded %d Hz / %d ch, want 22050 Hz / 2 ch", decoded.SampleRate(), decoded.Channels())
	}

	samples, err := audio.ReadAll(decoded)
	if err != nil && err != io.EOF {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(samples) != 1000 {
		t.Fatalf("decoded %d samples, want 1000", len(samples))
	}

	src.Reset()
	want, _ := audio.ReadAll(src)
	for i := range want {
		if math.Abs(float64(samples[i]-want[i])) > 1e-3 {
			t.Fatalf("sample %d = %v, want ≈%v", i, samples[i], want[i])
		}
	}
}
