// SPDX-License-Identifier: EPL-2.0

// Package audio defines the interfaces the streaming pipeline is built
// from.
//
// # Source and Sink
//
// A Source is anything that produces interleaved float32 PCM: format
// decoders (formats/wav, formats/mp3, formats/vorbis, formats/aiff),
// capture devices (device.Capture) and test generators. A Sink is
// anything that consumes it: WAV writers, players, network streamers.
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// The stream package connects a Source to a Sink through a lock-free
// ring so the two run on different goroutines at different cadences.
//
// # Sample Format
//
// Samples are interleaved float32 in [-1.0, 1.0]:
//   - 0.0 is silence
//   - ±1.0 is full scale
//
// The normalized format keeps bit depths out of the pipeline; the pcm
// package converts at the edges.
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. Other errors
// indicate problems with the underlying reader or device:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    if err == io.EOF {
//	        break // normal end of stream
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // process n samples from buf
//	}
package audio
