// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/internal/audiotest"
)

func encodeToFile(t *testing.T, enc Encoder, src audio.Source) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.flac")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := enc.Encode(f, src); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	return path
}

func decodeFile(t *testing.T, path string) (audio.Source, []float32) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })

	src, err := Decoder{}.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	samples, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	return src, samples
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		channels  int
		frames    int
		bitDepth  int
		blockSize int
		tolerance float64
	}{
		{"mono 16-bit", 1, 5000, 16, 0, 1e-4},
		{"stereo 16-bit", 2, 10000, 16, 0, 1e-4},
		{"stereo 24-bit small blocks", 2, 3000, 24, 256, 1e-6},
		{"6 channels", 6, 1024, 16, 512, 1e-4},
		{"empty", 2, 0, 16, 0, 1e-4},
		{"single frame", 1, 1, 16, 0, 1e-4},
		{"shorter than minimum block", 2, 15, 16, 0, 1e-4},
		{"one frame past a block", 2, 4097, 16, 0, 1e-4},
		{"short tail block", 1, 300, 16, 256, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(44100, tt.channels, tt.frames, 440)
			path := encodeToFile(t, Encoder{BitDepth: tt.bitDepth, BlockSize: tt.blockSize}, src)

			decoded, got := decodeFile(t, path)
			if decoded.SampleRate() != 44100 {
				t.Errorf("SampleRate() = %d, want 44100", decoded.SampleRate())
			}
			if decoded.Channels() != tt.channels {
				t.Errorf("Channels() = %d, want %d", decoded.Channels(), tt.channels)
			}

			src.Reset()
			want, _ := audio.ReadAll(src)
			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if math.Abs(float64(got[i]-want[i])) > tt.tolerance {
					t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestDecoder_ReportsFrames(t *testing.T) {
	t.Parallel()

	path := encodeToFile(t, Encoder{}, audiotest.NewSilentSource(22050, 2, 7000))
	src, _ := decodeFile(t, path)

	sized, ok := src.(audio.Sized)
	if !ok {
		t.Fatal("decoded source does not implement audio.Sized")
	}
	if sized.Frames() != 7000 {
		t.Errorf("Frames() = %d, want 7000", sized.Frames())
	}
}

func TestEncoder_StreamInfoBlockSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frames    int
		blockSize int
		want      uint16
	}{
		{"empty", 0, 0, DefaultBlockSize},
		{"one frame", 1, 0, DefaultBlockSize},
		{"tail of 3", 515, 256, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := encodeToFile(t, Encoder{BlockSize: tt.blockSize}, audiotest.NewSilentSource(8000, 1, tt.frames))
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			minSize := binary.BigEndian.Uint16(data[8:])
			maxSize := binary.BigEndian.Uint16(data[10:])
			if minSize != tt.want || maxSize != tt.want {
				t.Errorf("block size bounds = %d..%d, want %d..%d", minSize, maxSize, tt.want, tt.want)
			}
		})
	}
}

func TestDecoder_TruncatedStream(t *testing.T) {
	t.Parallel()

	path := encodeToFile(t, Encoder{}, audiotest.NewSilentSource(8000, 1, 100))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Set the 36-bit total sample count, the low bits of bytes 21..25, to
	// its maximum.
	data[21] |= 0x0f
	for i := 22; i < 26; i++ {
		data[i] = 0xff
	}

	src, err := Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if _, err := audio.ReadAll(src); !errors.Is(err, audio.ErrTruncated) {
		t.Errorf("ReadAll() error = %v, want audio.ErrTruncated", err)
	}
}

func TestDecoder_NotFlac(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF....WAVEfmt ")))
	if !errors.Is(err, ErrNotFlacFile) {
		t.Errorf("Decode() error = %v, want ErrNotFlacFile", err)
	}
}

func TestEncoder_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		enc     Encoder
		src     audio.Source
		wantErr error
	}{
		{"8-bit", Encoder{BitDepth: 8}, audiotest.NewSilentSource(8000, 1, 10), ErrUnsupportedBitDepth},
		{"tiny block", Encoder{BlockSize: 8}, audiotest.NewSilentSource(8000, 1, 10), ErrInvalidBlockSize},
		{"9 channels", Encoder{}, audiotest.NewSilentSource(8000, 9, 10), ErrTooManyChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, err := os.Create(filepath.Join(t.TempDir(), "x.flac"))
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()

			if err := tt.enc.Encode(f, tt.src); !errors.Is(err, tt.wantErr) {
				t.Errorf("Encode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncoder_LeavesDestinationOpen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "open.flac")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := (Encoder{}).Encode(f, audiotest.NewSilentSource(8000, 1, 100)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if _, err := f.Write(nil); err != nil {
		t.Errorf("destination closed by encoder: %v", err)
	}
}
