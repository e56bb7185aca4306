// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming side of soundbuffer: the Source
// interface every codec produces and consumes, the extension registry, and
// a few processors that chain Sources together.
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns the number of float32 values written, always a whole
// number of frames, and io.EOF once the stream is done. A Source that
// knows its length up front also implements Sized.
//
// # Registry
//
// A Registry maps a normalized extension to a Codec, the decoder and
// encoder pair for that format. Either side may be missing:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, wav.Encoder{})
//	registry.RegisterDecoder("mp3", mp3.Decoder{})
//	dec, ok := registry.Decoder(audio.FormatOf("song.MP3"))
//
// The registry is safe for concurrent use.
//
// # Processors
//
// Resampler converts the sample rate with cubic interpolation behind a
// one-pole low-pass, and MonoMixer averages all channels into one:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(source, 48000))
//
// ReadAll drains any Source into a single interleaved slice.
//
// # Sample Format
//
// Samples are float32 nominally in [-1.0, 1.0] but never clamped here.
// Conversion to and from integer PCM lives in package utils and clips.
package audio
