// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"fmt"
	"sync/atomic"
)

// cacheLine is the coherence granularity of current amd64 and arm64
// parts. Producer and consumer fields are kept on separate lines so
// index traffic from one side does not invalidate the other.
const cacheLine = 64

// Ring is a bounded, wait-free single-producer/single-consumer ring
// buffer. Exactly one goroutine may call the producer methods (Write,
// PeekWrite, CommitWrite) and exactly one goroutine may call the
// consumer methods (Read, PeekRead, CommitRead). Violating this is
// undefined behavior; the ring performs no runtime role checks because
// checking would require the synchronization the design exists to avoid.
//
// writeIdx and readIdx are monotonic element counters; they are never
// masked, so writeIdx-readIdx is the fill level even after either
// counter wraps uint64. The physical slot for logical position n is
// n & mask, valid because the capacity is a power of two.
//
// Go's sync/atomic operations are sequentially consistent, which is
// stronger than the acquire/release pairing the protocol needs: slot
// data stored before writeIdx.Store is visible to the consumer after
// its writeIdx.Load, and symmetrically for readIdx. cachedRead and
// cachedWrite hold each side's last view of the remote index, so the
// single-element hot path touches the remote cache line only when the
// ring looks full (producer) or empty (consumer).
//
// No operation blocks, spins, or allocates after construction.
type Ring[T any] struct {
	_ [cacheLine]byte

	// Producer side.
	writeIdx   atomic.Uint64
	cachedRead uint64
	_          [cacheLine - 16]byte

	// Consumer side.
	readIdx     atomic.Uint64
	cachedWrite uint64
	_           [cacheLine - 16]byte

	// Immutable after New.
	buf  []T
	mask uint64
}

// New creates a ring with the given capacity. The capacity must be a
// positive power of two; anything else fails with ErrInvalidCapacity.
// The capacity is deliberately not rounded up — a silent 2x memory
// growth would surprise callers sizing the ring from a latency budget.
//
// Storage is allocated once, here. T should not contain pointers to
// state that either side mutates after handoff; element transfer is a
// plain Go assignment.
func New[T any](capacity int) (*Ring[T], error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Ring[T]{
		buf:  make([]T, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// Write stores one element. It returns false when the ring is full and
// never retries; a real-time caller must treat false as a dropped
// element (overrun) and count it outside the hot path.
//
// Producer goroutine only.
func (r *Ring[T]) Write(v T) bool {
	w := r.writeIdx.Load()
	if w-r.cachedRead == uint64(len(r.buf)) {
		r.cachedRead = r.readIdx.Load()
		if w-r.cachedRead == uint64(len(r.buf)) {
			return false
		}
	}

	r.buf[w&r.mask] = v
	r.writeIdx.Store(w + 1)

	return true
}

// Read removes and returns the oldest element. It returns false when
// the ring is empty without mutating any state; the consumer should be
// woken by an external signal rather than polling in a tight loop.
//
// Consumer goroutine only.
func (r *Ring[T]) Read() (T, bool) {
	var zero T

	rd := r.readIdx.Load()
	if rd == r.cachedWrite {
		r.cachedWrite = r.writeIdx.Load()
		if rd == r.cachedWrite {
			return zero, false
		}
	}

	v := r.buf[rd&r.mask]
	r.readIdx.Store(rd + 1)

	return v, true
}

// PeekWrite returns the contiguous free region starting at the write
// position, or nil when the ring is full. The region may be shorter
// than the total free space when free space crosses the end of the
// storage; a second PeekWrite/CommitWrite cycle after committing the
// first region reaches the wrapped remainder.
//
// The caller fills some prefix of the region directly (memcpy-style,
// no staging buffer) and publishes it with CommitWrite. The region is
// invalidated by the matching CommitWrite.
//
// Producer goroutine only.
func (r *Ring[T]) PeekWrite() []T {
	w := r.writeIdx.Load()
	r.cachedRead = r.readIdx.Load()

	free := uint64(len(r.buf)) - (w - r.cachedRead)
	if free == 0 {
		return nil
	}

	pos := w & r.mask

	return r.buf[pos : pos+min(free, uint64(len(r.buf))-pos)]
}

// CommitWrite publishes n elements previously written into the region
// returned by the matching PeekWrite. n larger than that region is a
// contract violation and panics: by then the caller has already
// scribbled over slots the consumer may own, and no error return can
// undo that.
//
// Producer goroutine only.
func (r *Ring[T]) CommitWrite(n int) {
	if n == 0 {
		return
	}

	w := r.writeIdx.Load()
	free := uint64(len(r.buf)) - (w - r.cachedRead)
	contig := uint64(len(r.buf)) - w&r.mask

	if n < 0 || uint64(n) > min(free, contig) {
		panic("ring: CommitWrite exceeds the peeked region")
	}

	r.writeIdx.Store(w + uint64(n))
}

// PeekRead returns the contiguous readable region starting at the read
// position, or nil when the ring is empty. Like PeekWrite, the region
// stops at the end of the storage; drain the wrapped remainder with a
// second cycle. The region is invalidated by the matching CommitRead.
//
// Consumer goroutine only.
func (r *Ring[T]) PeekRead() []T {
	rd := r.readIdx.Load()
	r.cachedWrite = r.writeIdx.Load()

	avail := r.cachedWrite - rd
	if avail == 0 {
		return nil
	}

	pos := rd & r.mask

	return r.buf[pos : pos+min(avail, uint64(len(r.buf))-pos)]
}

// CommitRead releases n elements consumed from the region returned by
// the matching PeekRead. n larger than that region panics.
//
// Consumer goroutine only.
func (r *Ring[T]) CommitRead(n int) {
	if n == 0 {
		return
	}

	rd := r.readIdx.Load()
	avail := r.cachedWrite - rd
	contig := uint64(len(r.buf)) - rd&r.mask

	if n < 0 || uint64(n) > min(avail, contig) {
		panic("ring: CommitRead exceeds the peeked region")
	}

	r.readIdx.Store(rd + uint64(n))
}

// Len returns the number of elements available to read. The value is
// advisory: it is stale the instant the other goroutine acts, so it
// must never justify skipping the failure check on Write or Read.
func (r *Ring[T]) Len() int {
	return int(r.writeIdx.Load() - r.readIdx.Load())
}

// Free returns the number of slots available to write. Advisory, see Len.
func (r *Ring[T]) Free() int {
	return len(r.buf) - r.Len()
}

// Cap returns the fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// Reset rewinds both indexes to zero. It is not part of the SPSC
// protocol: it may only be called while neither the producer nor the
// consumer goroutine is touching the ring, typically between test
// cases or stream restarts. Slot memory is not zeroed.
func (r *Ring[T]) Reset() {
	r.writeIdx.Store(0)
	r.readIdx.Store(0)
	r.cachedRead = 0
	r.cachedWrite = 0
}
