// SPDX-License-Identifier: EPL-2.0

// Package pcm converts between the pipeline's normalized float32
// samples and 16-bit PCM at the edges (files, devices, the wire).
//
// Conversion clamps to [-1, 1] and scales by 32767, so a full-scale
// positive sample cannot overflow int16. The batch codecs work on
// little-endian byte slices, the layout WAV files, go-mp3 output and
// the oto player all use.
package pcm
