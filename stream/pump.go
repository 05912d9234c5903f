// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/vibrationalforce/echoelstream/audio"
	"github.com/vibrationalforce/echoelstream/ring"
)

// defaultPoll is how long a parked loop sleeps before rechecking the
// ring when no Signal fires. Half a typical audio block period.
const defaultPoll = 2 * time.Millisecond

// Pump is the producer loop: it reads an audio.Source directly into
// the ring's PeekWrite regions, so decoded samples normally land in
// ring storage without a staging copy. A source that only produces
// whole frames may decline a short region at the wrap point; the pump
// then falls back to one staged read covering the full free span.
//
// Pump owns the producer role of the ring for as long as Run is
// executing; nothing else may write to the ring during that time.
type Pump struct {
	Src  audio.Source
	Ring *ring.Ring[float32]

	// Meter, if set, counts produce attempts that found the ring full.
	Meter *Meter
	// Signal, if set, is raised after every commit to wake the consumer.
	Signal *Signal

	// Poll overrides the park interval used while the ring is full.
	Poll time.Duration

	staging []float32
}

// Run moves samples until the source ends or ctx is cancelled.
// Returns nil on io.EOF from the source.
func (p *Pump) Run(ctx context.Context) error {
	poll := p.Poll
	if poll <= 0 {
		poll = defaultPoll
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		dst := p.Ring.PeekWrite()
		if len(dst) == 0 {
			// Full. The pump is not real-time, so waiting here is
			// backpressure, not loss — but it is still a produce
			// attempt that failed, so it is counted.
			p.Meter.Overrun()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(poll):
			}
			continue
		}

		n, err := p.Src.ReadSamples(dst)
		switch {
		case n > 0:
			p.Ring.CommitWrite(n)
			p.Signal.Raise()
		case err == nil:
			// The source declined this region. Near the wrap point the
			// contiguous region can be shorter than one frame for a
			// multi-channel source, and it will never grow on its own;
			// offer the whole free span through a staging buffer.
			if free := p.Ring.Free(); free > len(dst) {
				n, err = p.readStaged(free)
			}
			if n == 0 && err == nil {
				// Still nothing: either the source has no data yet or
				// the free space is below one frame until the consumer
				// catches up. Park instead of spinning.
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(poll):
				}
			}
		}

		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
}

// readStaged reads up to limit samples into the staging buffer and
// copies them into the ring across the wrap point. limit must not
// exceed the ring's free space so every sample read has a slot.
func (p *Pump) readStaged(limit int) (int, error) {
	if cap(p.staging) < limit {
		p.staging = make([]float32, limit)
	}
	buf := p.staging[:limit]

	n, err := p.Src.ReadSamples(buf)

	rem := buf[:n]
	for len(rem) > 0 {
		region := p.Ring.PeekWrite()
		m := copy(region, rem)
		p.Ring.CommitWrite(m)
		rem = rem[m:]
	}
	if n > 0 {
		p.Signal.Raise()
	}

	return n, err
}
