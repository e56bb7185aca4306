// SPDX-License-Identifier: EPL-2.0

// Package codecs wires every format package into an [audio.Registry] keyed
// by file extension.
//
// Importing it pulls in formats/opus, which needs cgo and libopus. Build
// with -tags nolibopusfile so libopusfile is not linked as well.
package codecs

import (
	"log/slog"

	"github.com/ik5/soundbuffer/audio"
	"github.com/ik5/soundbuffer/formats/aiff"
	"github.com/ik5/soundbuffer/formats/flac"
	"github.com/ik5/soundbuffer/formats/mp3"
	"github.com/ik5/soundbuffer/formats/ogg"
	"github.com/ik5/soundbuffer/formats/opus"
	"github.com/ik5/soundbuffer/formats/wav"
)

// Default returns a registry built from DefaultEncodeOptions that logs to
// slog.Default().
func Default() *audio.Registry {
	return New(DefaultEncodeOptions(), nil)
}

// New returns a registry with all built-in formats. opts should already be
// validated; a nil logger means slog.Default().
//
//	wav, wave   decode, encode
//	flac        decode, encode
//	ogg         decode (Vorbis or Opus), encode (Opus)
//	opus        decode, encode
//	aiff, aif   decode, encode
//	mp3         decode
func New(opts EncodeOptions, logger *slog.Logger) *audio.Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := audio.NewRegistry()

	wavEnc := wav.Encoder{BitDepth: opts.WAVBitDepth}
	r.Register("wav", wav.Decoder{}, wavEnc)
	r.Register("wave", wav.Decoder{}, wavEnc)

	r.Register("flac", flac.Decoder{}, flac.Encoder{
		BitDepth:  opts.FLACBitDepth,
		BlockSize: opts.FLACBlockSize,
	})

	opusEnc := opus.Encoder{
		Bitrate: opts.OpusBitrate,
		FrameMs: opts.OpusFrameMs,
		Logger:  logger,
	}
	r.Register("ogg", ogg.Decoder{}, opusEnc)
	r.Register("opus", opus.Decoder{}, opusEnc)

	aiffEnc := aiff.Encoder{BitDepth: opts.AIFFBitDepth}
	r.Register("aiff", aiff.Decoder{}, aiffEnc)
	r.Register("aif", aiff.Decoder{}, aiffEnc)

	r.RegisterDecoder("mp3", mp3.Decoder{})

	return r
}
