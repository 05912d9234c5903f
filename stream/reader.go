// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"io"
	"sync/atomic"

	"github.com/vibrationalforce/echoelstream/pcm"
	"github.com/vibrationalforce/echoelstream/ring"
)

// PCM16Reader adapts a ring to io.Reader, yielding little-endian
// 16-bit PCM. It exists so byte-oriented players (oto takes an
// io.Reader) can be the consumer side of a ring.
//
// When the ring runs dry mid-read, the rest of the request is filled
// with silence and the underrun is counted — an audible glitch, never
// a stall. That matches what a hardware output does when starved.
//
// PCM16Reader holds the consumer role of the ring: nothing else may
// read from the ring while a player drives it.
type PCM16Reader struct {
	ring  *ring.Ring[float32]
	meter *Meter

	carry    [2]byte // second byte of a sample split across Read calls
	hasCarry bool

	finished atomic.Bool
}

// NewPCM16Reader wraps r. meter may be nil.
func NewPCM16Reader(r *ring.Ring[float32], meter *Meter) *PCM16Reader {
	return &PCM16Reader{ring: r, meter: meter}
}

// Finish tells the reader no more data will arrive. Once the ring is
// empty, Read returns io.EOF instead of silence, ending playback.
func (r *PCM16Reader) Finish() {
	r.finished.Store(true)
}

// Read fills p with PCM bytes. It never blocks: missing data becomes
// silence. Consumer goroutine only.
func (r *PCM16Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n := 0
	if r.hasCarry {
		p[0] = r.carry[1]
		r.hasCarry = false
		n = 1
	}

	starved := false
	for n < len(p) {
		region := r.ring.PeekRead()
		if len(region) == 0 {
			if r.finished.Load() && r.ring.Len() == 0 {
				if n == 0 {
					return 0, io.EOF
				}
				break
			}
			starved = true
			break
		}

		want := (len(p) - n) / 2
		take := min(len(region), want)

		if take > 0 {
			n += pcm.EncodeInt16LE(p[n:], region[:take])
			r.ring.CommitRead(take)
			continue
		}

		// One odd byte of space left: split a sample across calls.
		pcm.EncodeInt16LE(r.carry[:], region[:1])
		r.ring.CommitRead(1)
		p[n] = r.carry[0]
		r.hasCarry = true
		n++
	}

	if starved {
		r.meter.Underrun()
		for ; n < len(p); n++ {
			p[n] = 0
		}
	}

	return n, nil
}
