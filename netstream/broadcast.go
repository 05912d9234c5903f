// SPDX-License-Identifier: EPL-2.0

package netstream

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vibrationalforce/echoelstream/pcm"
	"github.com/vibrationalforce/echoelstream/ring"
	"github.com/vibrationalforce/echoelstream/stream"
)

// Broadcast fans one producer out to any number of subscribers, each
// behind its own single-consumer ring. The producer path takes no
// locks: the subscriber list lives behind an atomic snapshot, and a
// subscriber too slow to keep up loses samples on its own ring only.
type Broadcast struct {
	sampleRate int
	channels   int
	ringSize   int

	mu     sync.Mutex
	subs   atomic.Pointer[[]*subscriber]
	closed atomic.Bool
}

type subscriber struct {
	rb    *ring.Ring[float32]
	meter stream.Meter
	sig   *stream.Signal
	b     *Broadcast
}

// NewBroadcast prepares a fan-out point. ringSize is the per-subscriber
// buffer and must be a positive power of two.
func NewBroadcast(sampleRate, channels, ringSize int) (*Broadcast, error) {
	if ringSize <= 0 || ringSize&(ringSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ring.ErrInvalidCapacity, ringSize)
	}

	b := &Broadcast{
		sampleRate: sampleRate,
		channels:   channels,
		ringSize:   ringSize,
	}
	b.subs.Store(&[]*subscriber{})

	return b, nil
}

// SampleRate reports the rate subscribers will receive.
func (b *Broadcast) SampleRate() int { return b.sampleRate }

// Channels reports the interleaved channel count.
func (b *Broadcast) Channels() int { return b.channels }

// Subscribers reports the current fan-out width.
func (b *Broadcast) Subscribers() int { return len(*b.subs.Load()) }

func (b *Broadcast) subscribe() (*subscriber, error) {
	if b.closed.Load() {
		return nil, ErrBroadcastClosed
	}

	rb, err := ring.New[float32](b.ringSize)
	if err != nil {
		return nil, err
	}

	sub := &subscriber{rb: rb, sig: stream.NewSignal(), b: b}

	b.mu.Lock()
	defer b.mu.Unlock()

	old := *b.subs.Load()
	next := make([]*subscriber, len(old)+1)
	copy(next, old)
	next[len(old)] = sub
	b.subs.Store(&next)

	return sub, nil
}

func (b *Broadcast) unsubscribe(sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := *b.subs.Load()
	next := make([]*subscriber, 0, len(old))
	for _, s := range old {
		if s != sub {
			next = append(next, s)
		}
	}
	b.subs.Store(&next)
}

// WriteSamples delivers src to every subscriber ring. A full ring
// drops the overflow for that subscriber alone and counts an overrun
// on its meter; the return is always the full length so a slow
// subscriber cannot stall the producer.
func (b *Broadcast) WriteSamples(src []float32) (int, error) {
	if b.closed.Load() {
		return 0, ErrBroadcastClosed
	}

	for _, sub := range *b.subs.Load() {
		in := src
		for range 2 {
			if len(in) == 0 {
				break
			}
			region := sub.rb.PeekWrite()
			if len(region) == 0 {
				break
			}
			n := copy(region, in)
			sub.rb.CommitWrite(n)
			in = in[n:]
		}
		if len(in) > 0 {
			sub.meter.Overrun()
		}
		sub.sig.Raise()
	}

	return len(src), nil
}

// Close stops the broadcast. Subscribers drain what they have
// buffered, then see end of stream.
func (b *Broadcast) Close() error {
	b.closed.Store(true)

	for _, sub := range *b.subs.Load() {
		sub.sig.Raise()
	}

	return nil
}

// nextFrame fills pcm with the subscriber's next frame of 16-bit
// samples, waiting up to wait for data and padding with silence
// beyond that. It returns false once the broadcast is closed and the
// ring is empty.
func (s *subscriber) nextFrame(pcm16 []int16, wait time.Duration) bool {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	filled := 0
	for filled < len(pcm16) {
		region := s.rb.PeekRead()
		if len(region) > 0 {
			n := min(len(region), len(pcm16)-filled)
			for i := range n {
				pcm16[filled+i] = pcm.Float32ToInt16(region[i])
			}
			s.rb.CommitRead(n)
			filled += n
			continue
		}

		if s.b.closed.Load() && s.rb.Len() == 0 {
			if filled == 0 {
				return false
			}
			break
		}

		select {
		case <-s.sig.Wait():
		case <-deadline.C:
			// Starved past the deadline: ship silence so the stream
			// keeps its cadence.
			s.meter.Underrun()
			for i := filled; i < len(pcm16); i++ {
				pcm16[i] = 0
			}
			return true
		}
	}

	for i := filled; i < len(pcm16); i++ {
		pcm16[i] = 0
	}

	return true
}
