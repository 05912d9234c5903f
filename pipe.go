// SPDX-License-Identifier: EPL-2.0

package echoelstream

import (
	"context"
	"errors"

	"github.com/vibrationalforce/echoelstream/audio"
	"github.com/vibrationalforce/echoelstream/formats/aiff"
	"github.com/vibrationalforce/echoelstream/formats/mp3"
	"github.com/vibrationalforce/echoelstream/formats/vorbis"
	"github.com/vibrationalforce/echoelstream/formats/wav"
	"github.com/vibrationalforce/echoelstream/ring"
	"github.com/vibrationalforce/echoelstream/stream"
)

// Pipe moves everything src produces into sink through a ring of the
// given capacity (a positive power of two), pumping and draining on
// separate goroutines. It returns once src is exhausted and the ring
// has drained, or once either side fails; a failure on one side stops
// the other, and the first cause is the error reported. The returned
// Stats carry the overrun/underrun counts seen along the way.
func Pipe(ctx context.Context, src audio.Source, sink audio.Sink, capacity int) (stream.Stats, error) {
	rb, err := ring.New[float32](capacity)
	if err != nil {
		return stream.Stats{}, err
	}

	meter := &stream.Meter{}
	sig := stream.NewSignal()

	pump := &stream.Pump{Src: src, Ring: rb, Meter: meter, Signal: sig}
	drain := &stream.Drain{Ring: rb, Sink: sink, Meter: meter, Signal: sig}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	drainErr := make(chan error, 1)
	go func() {
		err := drain.Run(ctx)
		// A dead consumer must also stop the producer, or a full ring
		// would park the pump with nobody left to make space.
		cancel()
		drainErr <- err
	}()

	pumpErr := pump.Run(ctx)
	if pumpErr == nil {
		drain.Finish()
	} else {
		cancel()
	}

	err = <-drainErr
	if err == nil || errors.Is(err, context.Canceled) {
		// The drain either succeeded or was merely collateral of the
		// cancellation above; the pump's error is the first cause.
		if pumpErr != nil {
			err = pumpErr
		}
	}

	return meter.Stats(), err
}

// Decoders returns a registry with every built-in format registered.
func Decoders() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}
