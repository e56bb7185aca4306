// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with
// github.com/jfreymuth/oggvorbis.
//
//	source, err := vorbis.Decoder{}.Decode(file)
//
// Samples are already float32 in the codec and are passed through
// unchanged, interleaved. Pure-Go Vorbis encoding is not available; files
// written with the "ogg" extension are Ogg Opus (see package opus).
package vorbis
