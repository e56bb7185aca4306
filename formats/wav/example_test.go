// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/formats/wav"
	"github.com/ik5/soundbuffer/internal/audiotest"
)

func Example() {
	dir, err := os.MkdirTemp("", "wav-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")
	out, err := os.Create(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	err = wav.Encoder{}.Encode(out, audiotest.NewSineSource(8000, 1, 800, 440))
	out.Close()
	if err != nil {
		fmt.Println(err)
		return
	}

	in, err := os.Open(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer in.Close()

	src, err := wav.Decoder{}.Decode(in)
	if err != nil {
		fmt.Println(err)
		return
	}
	samples, _ := audio.ReadAll(src)

	fmt.Printf("%d Hz, %d channel(s), %d samples\n", src.SampleRate(), src.Channels(), len(samples))
	// Output: 8000 Hz, 1 channel(s), 800 samples
}
