// SPDX-License-Identifier: EPL-2.0

package stream

// Signal wakes a sleeping consumer without ever blocking the producer.
// It is the external wake mechanism the ring deliberately does not
// provide: the producer calls Raise after committing data, the
// consumer selects on Wait instead of busy-polling.
//
// Raise coalesces: any number of raises between two waits wake the
// consumer once, which is exactly right for "data is available" —
// the consumer drains everything it finds anyway.
//
// A nil *Signal is valid; Raise on it is a no-op.
type Signal struct {
	ch chan struct{}
}

func NewSignal() *Signal {
	return &Signal{ch: make(chan struct{}, 1)}
}

// Raise marks data (or space) available. Never blocks, never
// allocates; safe to call from an audio callback.
func (s *Signal) Raise() {
	if s == nil {
		return
	}

	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// Wait returns the channel to select on.
func (s *Signal) Wait() <-chan struct{} {
	return s.ch
}
