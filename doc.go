// SPDX-License-Identifier: EPL-2.0

// Package soundbuffer provides a multi-channel audio buffer for granular
// synthesis and other offline processing.
//
// A [SoundBuffer] holds a finite run of interleaved float64 frames with a
// fixed channel count and a sample rate. Samples are not bounded to
// [-1, 1]; only codecs clip, and only when their format requires it.
//
// # Construction
//
//	empty, _ := soundbuffer.New(soundbuffer.Empty{})
//	silence, _ := soundbuffer.New(soundbuffer.WithLength{Frames: 44100})
//	guitar, _ := soundbuffer.New(soundbuffer.FromSource{Path: "guitar.wav"})
//	short, _ := soundbuffer.New(soundbuffer.FromSourceResized{Path: "guitar.wav", Frames: 1000})
//
// # Indexing
//
// [SoundBuffer.Frame] and [SoundBuffer.Sample] accept negative frame
// indexes counting back from the end, so Frame(-1) is the last frame.
// Both return copies. [SoundBuffer.SetFrame] is the only in-place mutation.
//
// # Transformations
//
// Resize, Grains, RandomGrains, Slice, Env, Clip and Normalize all return
// new buffers:
//
//	grains, _ := guitar.Grains(441)
//	for g := range grains {
//	    enveloped, _ := g.Env(soundbuffer.Sine)
//	    ...
//	}
//
// # Files
//
// The codec is chosen by extension through an [audio.Registry]; by default
// the one built by [codecs.New]. wav, flac, ogg (written as Opus), opus and
// aiff can be read and written; mp3 can be read.
//
//	err := guitar.Write("out.flac")
//	err = guitar.WriteAll(ctx, []string{"out.wav", "out.ogg"})
//
// The Opus codec links libopus through cgo, so importing this package needs
// cgo and the libopus development files. libopusfile is not used; pass
// -tags nolibopusfile to skip linking it.
package soundbuffer
