// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files through
// github.com/go-audio/wav.
//
// # Decoding
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
// 8, 16, 24 and 32-bit PCM (plain or WAVE_FORMAT_EXTENSIBLE) is accepted
// with any channel count. Samples come out as interleaved float32 in
// [-1, 1). The returned source reports its length through audio.Sized.
//
// # Encoding
//
//	out, _ := os.Create("out.wav")
//	err := wav.Encoder{BitDepth: 24}.Encode(out, source)
//
// Samples outside [-1, 1] are clipped. The encoder seeks back to patch the
// RIFF header sizes, so the destination must be an io.WriteSeeker. It does
// not close the destination.
//
// # Errors
//
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrOnlyPCMSupported: float or compressed WAV
//   - ErrUnsupportedBitDepth: depth outside the supported set
//   - ErrUnsupportedWavLayout: no data chunk could be located
package wav
