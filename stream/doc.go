// SPDX-License-Identifier: EPL-2.0

// Package stream runs the two sides of a ring: a Pump pulling from an
// audio.Source on the producer goroutine and a Drain (or PCM16Reader)
// feeding an audio.Sink on the consumer goroutine.
//
//	rb, _ := ring.New[float32](8192)
//	meter := &stream.Meter{}
//	sig := stream.NewSignal()
//
//	pump := &stream.Pump{Src: src, Ring: rb, Meter: meter, Signal: sig}
//	drain := &stream.Drain{Ring: rb, Sink: sink, Meter: meter, Signal: sig}
//
//	go drain.Run(ctx)
//	if err := pump.Run(ctx); err == nil {
//	    drain.Finish() // let the drain empty the ring and stop
//	}
//
// Both loops use the ring's zero-copy peek/commit API, so samples move
// source → ring storage → sink with no intermediate buffer.
//
// The Meter holds the overrun/underrun counters the ring itself
// refuses to keep; the Signal is the producer-raised wake that spares
// the consumer from busy-polling. Both are optional (nil is valid) and
// shareable.
//
// For byte-oriented consumers (the oto player wants an io.Reader),
// PCM16Reader drains the ring as little-endian 16-bit PCM, substituting
// silence on underrun so playback never stalls.
package stream
