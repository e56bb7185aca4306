// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/internal/audiotest"
	libopus "gopkg.in/hraban/opus.v2"
)

func roundTrip(t *testing.T, enc Encoder, src audio.Source) (audio.Source, []float32) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.opus")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(f, src); err != nil {
		f.Close()
		t.Fatalf("Encode() error = %v", err)
	}
	f.Close()

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { in.Close() })

	decoded, err := Decoder{}.Decode(in)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	samples, err := audio.ReadAll(decoded)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	return decoded, samples
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		sampleRate   int
		channels     int
		frames       int
		wantChannels int
		wantFrames   int
	}{
		{"stereo 48k", 48000, 2, 48000, 2, 48000},
		{"mono 48k odd length", 48000, 1, 12345, 1, 12345},
		{"stereo 24k resampled", 24000, 2, 24000, 2, 48000},
		{"quad mixed to mono", 48000, 4, 9600, 1, 9600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.sampleRate, tt.channels, tt.frames, 440)
			decoded, samples := roundTrip(t, Encoder{}, src)

			if decoded.SampleRate() != SampleRate {
				t.Errorf("SampleRate() = %d, want %d", decoded.SampleRate(), SampleRate)
			}
			if decoded.Channels() != tt.wantChannels {
				t.Errorf("Channels() = %d, want %d", decoded.Channels(), tt.wantChannels)
			}

			// tolerate a difference in pre-skip handling between muxers
			got := len(samples) / tt.wantChannels
			if math.Abs(float64(got-tt.wantFrames)) > preSkip {
				t.Errorf("decoded %d frames, want ≈%d", got, tt.wantFrames)
			}
		})
	}
}

func TestRoundTrip_CarriesSignal(t *testing.T) {
	t.Parallel()

	_, samples := roundTrip(t, Encoder{Bitrate: 128000}, audiotest.NewSineSource(48000, 1, 48000, 440))

	var energy float64
	for _, s := range samples {
		energy += float64(s) * float64(s)
	}
	if rms := math.Sqrt(energy / float64(len(samples))); rms < 0.1 {
		t.Errorf("RMS = %v, want audible signal", rms)
	}
}

func TestEncoder_InvalidFrameLength(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "x.opus"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	err = Encoder{FrameMs: 15}.Encode(f, audiotest.NewSilentSource(48000, 1, 10))
	if !errors.Is(err, ErrInvalidFrameLength) {
		t.Errorf("Encode() error = %v, want ErrInvalidFrameLength", err)
	}
}

func TestDecoder_NotOpus(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("fLaC\x00\x00\x00\x22")))
	if !errors.Is(err, ErrNotOpusFile) {
		t.Errorf("Decode() error = %v, want ErrNotOpusFile", err)
	}
}

// encodePackets returns count 20 ms mono packets of a 440 Hz tone.
func encodePackets(t *testing.T, count int) [][]byte {
	t.Helper()

	enc, err := libopus.NewEncoder(SampleRate, 1, libopus.AppAudio)
	if err != nil {
		t.Fatal(err)
	}

	pcm := make([]int16, 960)
	var packets [][]byte
	for p := range count {
		for i := range pcm {
			pcm[i] = int16(8000 * math.Sin(2*math.Pi*440*float64(p*960+i)/SampleRate))
		}
		buf := make([]byte, 4000)
		n, err := enc.Encode(pcm, buf)
		if err != nil {
			t.Fatal(err)
		}
		packets = append(packets, buf[:n])
	}

	return packets
}

func TestDecoder_SeveralPacketsPerPage(t *testing.T) {
	t.Parallel()

	packets := encodePackets(t, 5)

	headLacing, headBody := audiotest.Lace(false, audiotest.OpusHead(1, 0))
	tagsLacing, tagsBody := audiotest.Lace(false, []byte("OpusTags\x00\x00\x00\x00\x00\x00\x00\x00"))
	firstLacing, firstBody := audiotest.Lace(false, packets[:3]...)
	restLacing, restBody := audiotest.Lace(false, packets[3:]...)

	stream := bytes.Join([][]byte{
		audiotest.OggPage(audiotest.OggBOS, 0, 1, 0, headLacing, headBody),
		audiotest.OggPage(0, 0, 1, 1, tagsLacing, tagsBody),
		audiotest.OggPage(0, 3*960, 1, 2, firstLacing, firstBody),
		// the last page trims the final packet to 4.5 packets worth
		audiotest.OggPage(audiotest.OggEOS, 4*960+480, 1, 3, restLacing, restBody),
	}, nil)

	src, err := Decoder{}.Decode(bytes.NewReader(stream))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	samples, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if want := 4*960 + 480; len(samples) != want {
		t.Errorf("decoded %d frames, want %d", len(samples), want)
	}
}
