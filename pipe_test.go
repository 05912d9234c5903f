// SPDX-License-Identifier: EPL-2.0

package echoelstream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibrationalforce/echoelstream/internal/audiotest"
	"github.com/vibrationalforce/echoelstream/ring"
)

func TestPipe(t *testing.T) {
	t.Parallel()

	const total = 50_000

	src := audiotest.NewCounterSource(48000, total)
	sink := &audiotest.CaptureSink{}

	_, err := Pipe(context.Background(), src, sink, 1<<9)
	require.NoError(t, err)
	require.Len(t, sink.Samples, total)

	for i, v := range sink.Samples {
		want := float32(i%32767+1) / 32767.0
		if v != want {
			t.Fatalf("sample %d = %v, want %v", i, v, want)
		}
	}
}

func TestPipe_InvalidCapacity(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	sink := &audiotest.CaptureSink{}

	_, err := Pipe(context.Background(), src, sink, 1000)
	require.ErrorIs(t, err, ring.ErrInvalidCapacity)
}

// failingSink errors on every write.
type failingSink struct{ err error }

func (s *failingSink) WriteSamples([]float32) (int, error) { return 0, s.err }
func (s *failingSink) Close() error                        { return nil }

func TestPipe_SinkError(t *testing.T) {
	t.Parallel()

	// The source never ends on its own: only the sink's failure can
	// stop the pipeline, and it must stop both sides.
	src := audiotest.NewSineSource(48000, 1, 1<<30, 440)
	sinkErr := errors.New("sink gone")

	_, err := Pipe(context.Background(), src, &failingSink{err: sinkErr}, 64)
	require.ErrorIs(t, err, sinkErr)
}

// failingSource errors after a few reads.
type failingSource struct {
	reads int
	err   error
}

func (s *failingSource) SampleRate() int { return 48000 }
func (s *failingSource) Channels() int   { return 1 }
func (s *failingSource) Close() error    { return nil }

func (s *failingSource) ReadSamples(dst []float32) (int, error) {
	if s.reads == 0 {
		return 0, s.err
	}
	s.reads--

	return len(dst), nil
}

func TestPipe_SourceError(t *testing.T) {
	t.Parallel()

	srcErr := errors.New("decode failed")
	src := &failingSource{reads: 3, err: srcErr}
	sink := &audiotest.CaptureSink{}

	_, err := Pipe(context.Background(), src, sink, 64)
	require.ErrorIs(t, err, srcErr)
	require.NotErrorIs(t, err, context.Canceled)
}

func TestPipe_Cancel(t *testing.T) {
	t.Parallel()

	// Endless source into a sink that accepts nothing would never
	// finish; cancellation must end both goroutines.
	src := audiotest.NewSineSource(48000, 1, 1<<30, 440)
	sink := &audiotest.CaptureSink{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Pipe(ctx, src, sink, 64)
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecoders(t *testing.T) {
	t.Parallel()

	reg := Decoders()
	for _, format := range []string{"wav", "mp3", "ogg", "aiff"} {
		_, ok := reg.Get(format)
		require.True(t, ok, "format %q not registered", format)
	}

	_, ok := reg.Get("flac")
	require.False(t, ok)
}
