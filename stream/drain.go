// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vibrationalforce/echoelstream/audio"
	"github.com/vibrationalforce/echoelstream/ring"
)

// Drain is the consumer loop: it hands the ring's PeekRead regions to
// an audio.Sink and commits what the sink accepted.
//
// Drain owns the consumer role of the ring for as long as Run is
// executing; nothing else may read from the ring during that time.
type Drain struct {
	Ring *ring.Ring[float32]
	Sink audio.Sink

	// Meter, if set, counts consume attempts that found the ring empty.
	Meter *Meter
	// Signal, if set, wakes the loop instead of the poll timer.
	Signal *Signal

	// Poll overrides the park interval used while the ring is empty.
	Poll time.Duration

	finished atomic.Bool
}

// Finish tells the drain no more data will arrive. Run keeps going
// until the ring is empty, then returns.
func (d *Drain) Finish() {
	d.finished.Store(true)
	d.Signal.Raise()
}

// Run moves samples until Finish has been called and the ring is
// drained, or ctx is cancelled.
func (d *Drain) Run(ctx context.Context) error {
	poll := d.Poll
	if poll <= 0 {
		poll = defaultPoll
	}

	var wake <-chan struct{}
	if d.Signal != nil {
		wake = d.Signal.Wait()
	}

	for {
		region := d.Ring.PeekRead()
		if len(region) == 0 {
			if d.finished.Load() && d.Ring.Len() == 0 {
				return nil
			}

			d.Meter.Underrun()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-wake:
			case <-time.After(poll):
			}
			continue
		}

		written := 0
		for written < len(region) {
			n, err := d.Sink.WriteSamples(region[written:])
			written += n
			if err != nil {
				d.Ring.CommitRead(written)
				return fmt.Errorf("%w", err)
			}
			if n == 0 {
				break // sink is not accepting right now
			}
		}
		d.Ring.CommitRead(written)

		if written == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(poll):
			}
		}
	}
}
