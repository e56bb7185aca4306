// SPDX-License-Identifier: EPL-2.0

// Package opus writes and reads Ogg Opus through gopkg.in/hraban/opus.v2
// (libopus, cgo). pion's oggwriter writes the Ogg container; on the read
// side pion's oggreader checks pages and parses OpusHead, and
// internal/oggpacket splits pages into packets by their lacing values.
//
// The encoder resamples to 48 kHz and mixes sources wider than stereo down
// to mono before encoding 16-bit PCM packets. Each packet goes on its own
// Ogg page. The decoder honors the OpusHead pre-skip and trims the last
// packet to the final granule position, so a round trip preserves length.
//
// Opus is lossy: decoded samples only approximate the input.
//
// # Build requirements
//
// Building needs cgo and the libopus headers (pkg-config opus). Only the
// raw Encoder and Decoder of hraban/opus are used, never its libopusfile
// stream API, so build with
//
//	go build -tags nolibopusfile
//
// to drop the libopusfile dependency.
package opus
