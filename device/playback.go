// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/vibrationalforce/echoelstream/ring"
	"github.com/vibrationalforce/echoelstream/stream"
)

// oto allows a single context per process, so the first playback's
// rate and channel count stick for the lifetime of the program.
var (
	otoMu  sync.Mutex
	otoCtx *oto.Context
)

func otoContext(sampleRate, channels int) (*oto.Context, error) {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx != nil {
		return otoCtx, nil
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	<-ready

	otoCtx = ctx

	return ctx, nil
}

// Playback feeds an oto player from a ring. Underruns come out as
// silence, so playback keeps running through starvation.
type Playback struct {
	player *oto.Player
	reader *stream.PCM16Reader
}

// OpenPlayback binds a player to the consumer side of rb.
func OpenPlayback(sampleRate, channels int, rb *ring.Ring[float32], meter *stream.Meter) (*Playback, error) {
	ctx, err := otoContext(sampleRate, channels)
	if err != nil {
		return nil, err
	}

	reader := stream.NewPCM16Reader(rb, meter)

	return &Playback{
		player: ctx.NewPlayer(reader),
		reader: reader,
	}, nil
}

// Start begins pulling from the ring.
func (p *Playback) Start() { p.player.Play() }

// Finish lets buffered samples play out, then the player sees EOF.
func (p *Playback) Finish() { p.reader.Finish() }

// Close stops playback immediately.
func (p *Playback) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
