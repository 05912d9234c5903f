// SPDX-License-Identifier: EPL-2.0

package ring

import (
	"runtime"
	"sync/atomic"
	"testing"
)

// One goroutine writes an increasing counter as fast as it can, another
// reads and verifies strictly increasing values. Dropped writes are
// acceptable; reordering, duplication, and lost accounting are not:
// reads + drops must equal total write attempts.
func TestConcurrentProducerConsumer(t *testing.T) {
	t.Parallel()

	const (
		capacity = 1 << 10
		attempts = 1 << 21
	)

	rb, err := New[uint64](capacity)
	if err != nil {
		t.Fatal(err)
	}

	var (
		drops        uint64
		reads        uint64
		done         atomic.Bool
		consumerDone = make(chan struct{})
	)

	go func() {
		defer close(consumerDone)

		last := int64(-1)
		for {
			v, ok := rb.Read()
			if !ok {
				if done.Load() && rb.Len() == 0 {
					return
				}
				runtime.Gosched()
				continue
			}

			if int64(v) <= last {
				t.Errorf("order violation: read %d after %d", v, last)
				return
			}
			last = int64(v)
			reads++
		}
	}()

	for i := uint64(0); i < attempts; i++ {
		if !rb.Write(i) {
			drops++
		}
	}
	done.Store(true)
	<-consumerDone

	if reads+drops != attempts {
		t.Fatalf("reads (%d) + drops (%d) = %d, want %d", reads, drops, reads+drops, attempts)
	}
	if reads == 0 {
		t.Fatal("consumer read nothing")
	}
}

// Same contract through the bulk path: the producer moves blocks with
// PeekWrite/CommitWrite, the consumer with PeekRead/CommitRead.
func TestConcurrentPeekCommit(t *testing.T) {
	t.Parallel()

	const (
		capacity = 1 << 10
		total    = 1 << 20
		block    = 192 // does not divide capacity, forces wrap splits
	)

	rb, err := New[uint64](capacity)
	if err != nil {
		t.Fatal(err)
	}

	var (
		done         atomic.Bool
		consumerDone = make(chan struct{})
		consumed     uint64
	)

	go func() {
		defer close(consumerDone)

		var expect uint64
		for {
			region := rb.PeekRead()
			if len(region) == 0 {
				if done.Load() && rb.Len() == 0 {
					consumed = expect
					return
				}
				runtime.Gosched()
				continue
			}

			for i, v := range region {
				if v != expect {
					t.Errorf("region[%d] = %d, want %d", i, v, expect)
					consumed = expect
					return
				}
				expect++
			}
			rb.CommitRead(len(region))
		}
	}()

	var next uint64
	for next < total {
		dst := rb.PeekWrite()
		if len(dst) == 0 {
			runtime.Gosched()
			continue
		}

		n := min(len(dst), block)
		for i := 0; i < n; i++ {
			dst[i] = next + uint64(i)
		}
		rb.CommitWrite(n)
		next += uint64(n)
	}
	done.Store(true)
	<-consumerDone

	if consumed != total {
		t.Fatalf("consumed %d elements, want %d", consumed, total)
	}
}

// Benchmark: single producer, single consumer, element at a time.
func BenchmarkWriteRead_1P1C(b *testing.B) {
	const capacity = 1 << 14

	rb, err := New[uint64](capacity)
	if err != nil {
		b.Fatal(err)
	}

	done := make(chan struct{})

	go func() {
		for i := 0; i < b.N; i++ {
			for {
				if _, ok := rb.Read(); ok {
					break
				}
				runtime.Gosched()
			}
		}
		close(done)
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for !rb.Write(uint64(i)) {
			runtime.Gosched()
		}
	}
	<-done
	b.StopTimer()
}

// Benchmark: 512-element blocks through the zero-copy path.
func BenchmarkPeekCommit_Blocks(b *testing.B) {
	const (
		capacity = 1 << 14
		block    = 512
	)

	rb, err := New[float32](capacity)
	if err != nil {
		b.Fatal(err)
	}

	done := make(chan struct{})

	go func() {
		var got int
		for got < b.N*block {
			region := rb.PeekRead()
			if len(region) == 0 {
				runtime.Gosched()
				continue
			}
			rb.CommitRead(len(region))
			got += len(region)
		}
		close(done)
	}()

	src := make([]float32, block)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		remaining := src
		for len(remaining) > 0 {
			dst := rb.PeekWrite()
			if len(dst) == 0 {
				runtime.Gosched()
				continue
			}
			n := copy(dst, remaining)
			rb.CommitWrite(n)
			remaining = remaining[n:]
		}
	}
	<-done
	b.StopTimer()
}
