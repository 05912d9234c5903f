// SPDX-License-Identifier: EPL-2.0

package ring_test

import (
	"fmt"

	"github.com/vibrationalforce/echoelstream/ring"
)

// Example_basic shows element-wise transfer with the full/empty
// outcomes handled as ordinary flow control.
func Example_basic() {
	rb, err := ring.New[int](4)
	if err != nil {
		fmt.Println("bad capacity:", err)
		return
	}

	for v := 1; v <= 5; v++ {
		if !rb.Write(v) {
			fmt.Println("dropped:", v)
		}
	}

	for {
		v, ok := rb.Read()
		if !ok {
			break
		}
		fmt.Println("read:", v)
	}
	// Output:
	// dropped: 5
	// read: 1
	// read: 2
	// read: 3
	// read: 4
}

// Example_peekCommit moves a whole audio block without a staging copy.
// An audio callback would do exactly this with its input buffer.
func Example_peekCommit() {
	rb, _ := ring.New[float32](8)

	block := []float32{0.1, 0.2, 0.3, 0.4, 0.5}

	// Producer side: copy the block straight into ring storage. When
	// the free region wraps, a second cycle picks up the remainder.
	for len(block) > 0 {
		dst := rb.PeekWrite()
		if len(dst) == 0 {
			break // full: drop and count in real code
		}
		n := copy(dst, block)
		rb.CommitWrite(n)
		block = block[n:]
	}

	// Consumer side: drain whatever is contiguous.
	region := rb.PeekRead()
	fmt.Println("readable:", len(region))
	rb.CommitRead(len(region))
	fmt.Println("after drain:", rb.Len())
	// Output:
	// readable: 5
	// after drain: 0
}
