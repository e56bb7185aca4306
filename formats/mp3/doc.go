// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using
// github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so mono files come out with the
// channel duplicated. Samples are scaled to float32 in [-1.0, 1.0).
//
//	source, err := mp3.Decoder{}.Decode(file)
//
// When the input is an io.Seeker the total length is known up front and
// the returned source reports it through Frames; otherwise Frames is -1.
//
// There is no MP3 encoder.
package mp3
