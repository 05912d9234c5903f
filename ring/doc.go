// SPDX-License-Identifier: EPL-2.0

// Package ring provides a wait-free single-producer/single-consumer
// ring buffer for moving audio data between a real-time thread and
// everything else.
//
// The buffer exists so a hard-real-time producer (an audio callback
// with a per-block deadline) can hand samples to a non-real-time
// consumer (UI metering, disk writing, network streaming) without
// locks, allocation, or priority inversion. Both sides complete in a
// bounded number of steps regardless of what the other side is doing.
//
// # Usage Contract
//
// Exactly one goroutine writes, exactly one goroutine reads:
//
//	rb, err := ring.New[float32](4096)
//	if err != nil {
//	    // capacity was not a power of two
//	}
//
//	// producer goroutine
//	if !rb.Write(sample) {
//	    overruns.Add(1) // ring full: drop, count, move on
//	}
//
//	// consumer goroutine
//	if v, ok := rb.Read(); ok {
//	    process(v)
//	}
//
// A full ring fails the write and an empty ring fails the read. Both
// are ordinary flow control in real-time audio, not errors: the caller
// counts them (see the stream package's Meter) and degrades gracefully.
// Overwrite-oldest semantics are deliberately not offered — the ring is
// strictly FIFO with backpressure by failure.
//
// # Zero-Copy Peek/Commit
//
// Audio callbacks receive blocks of N frames. Copying a block through
// Write one element at a time costs a call and an index update per
// sample, so the ring exposes its storage directly:
//
//	dst := rb.PeekWrite()        // contiguous free slots at the write position
//	n := copy(dst, block)
//	rb.CommitWrite(n)            // publish
//
// When the free region crosses the end of the storage, PeekWrite
// returns only the part before the wrap; a second peek/commit cycle
// picks up the rest. PeekRead/CommitRead mirror this on the consumer
// side. The effect of peek+commit is identical to element-wise
// Write/Read, only cheaper.
//
// # Waking the Consumer
//
// The ring itself never blocks and never signals. A consumer that
// should sleep until data arrives pairs the ring with an external wake
// primitive that the producer raises after committing — see
// stream.Signal for the one this module uses.
//
// # Limits
//
// Single producer, single consumer, fixed capacity, in-process. MPMC
// access needs a different algorithm (CAS loops) with different
// real-time behavior and is out of scope here.
package ring
