// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM 16-bit WAV streams.
//
// Decoder handles the canonical 44-byte-header layout only, on a plain
// io.Reader. WriteWAV16 emits that same layout in one shot; Writer is
// the incremental audio.Sink counterpart built on go-audio's encoder.
package wav
