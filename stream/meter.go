// SPDX-License-Identifier: EPL-2.0

package stream

import "sync/atomic"

// Meter counts overruns and underruns for one ring. The ring itself
// never counts anything: a failed Write or Read is reported to the
// caller, and the caller ticks the meter. Increments are plain atomic
// adds, cheap enough for a real-time callback.
//
// A nil *Meter is valid and counts nothing.
type Meter struct {
	overruns  atomic.Uint64
	underruns atomic.Uint64
}

// Stats is a snapshot of the meter. Advisory only: the counters keep
// moving while the snapshot is taken.
type Stats struct {
	// Overruns is the number of produce attempts that found the ring
	// full (data dropped or producer stalled).
	Overruns uint64
	// Underruns is the number of consume attempts that found the ring
	// empty (silence played or consumer stalled).
	Underruns uint64
}

// Overrun records one failed produce attempt.
func (m *Meter) Overrun() {
	if m == nil {
		return
	}
	m.overruns.Add(1)
}

// Underrun records one failed consume attempt.
func (m *Meter) Underrun() {
	if m == nil {
		return
	}
	m.underruns.Add(1)
}

// Stats returns the current counter values.
func (m *Meter) Stats() Stats {
	if m == nil {
		return Stats{}
	}

	return Stats{
		Overruns:  m.overruns.Load(),
		Underruns: m.underruns.Load(),
	}
}
