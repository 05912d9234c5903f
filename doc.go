// SPDX-License-Identifier: EPL-2.0

// Package echoelstream moves real-time audio between sources and sinks
// through lock-free single-producer single-consumer rings.
//
// The layers, bottom up:
//
//   - ring: the generic SPSC ring buffer with zero-copy peek/commit.
//   - pcm: float32 <-> 16-bit PCM conversion.
//   - audio: the Source, Sink and Decoder interfaces.
//   - stream: Pump and Drain goroutines running the two sides of a
//     ring, plus the Meter and Signal that surround it.
//   - formats: WAV, MP3, Ogg Vorbis and AIFF decoders.
//   - device: portaudio capture and oto playback.
//   - netstream: websocket fan-out with Opus encoding.
//
// Pipe ties the common case together: decode, buffer, deliver.
package echoelstream
