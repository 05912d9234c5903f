// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/require"
)

// fakeAiff replays canned integer samples in place of go-audio's
// decoder.
type fakeAiff struct {
	format  *goaudio.Format
	samples []int
	offset  int
	fail    error
}

func (f *fakeAiff) Format() *goaudio.Format { return f.format }

func (f *fakeAiff) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	if f.offset >= len(f.samples) {
		return 0, nil
	}

	n := min(len(buf.Data), len(f.samples)-f.offset)
	copy(buf.Data, f.samples[f.offset:f.offset+n])
	f.offset += n

	return n, nil
}

func stereo44k() *goaudio.Format {
	return &goaudio.Format{NumChannels: 2, SampleRate: 44100}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("RIFF this is a wav, not an aiff")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrNotAiffFile)
	}
}

func TestReadSamples(t *testing.T) {
	t.Parallel()

	samples := []int{0, 16384, -16384, 32767, -32768}
	src := &source{
		dec:        &fakeAiff{format: stereo44k(), samples: samples},
		sampleRate: 44100,
		channels:   2,
	}

	require.Equal(t, 44100, src.SampleRate())
	require.Equal(t, 2, src.Channels())

	got := make([]float32, len(samples))
	n, err := src.ReadSamples(got)
	if err != nil {
		require.ErrorIs(t, err, io.EOF)
	}
	require.Equal(t, len(samples), n)

	for i, s := range samples {
		require.InDelta(t, float32(s)/32768.0, got[i], 1e-6, "sample %d", i)
	}
}

func TestReadSamples_ShortFinalRead(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeAiff{format: stereo44k(), samples: []int{1, 2, 3}},
		sampleRate: 44100,
		channels:   2,
	}

	// Asking for more than remains flags EOF with the final samples.
	got := make([]float32, 8)
	n, err := src.ReadSamples(got)
	require.Equal(t, 3, n)
	require.ErrorIs(t, err, io.EOF)

	n, err = src.ReadSamples(got)
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadSamples_PropagatesError(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeAiff{format: stereo44k(), fail: io.ErrUnexpectedEOF},
		sampleRate: 44100,
		channels:   2,
	}

	n, err := src.ReadSamples(make([]float32, 4))
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadSamples_EmptyDst(t *testing.T) {
	t.Parallel()

	src := &source{
		dec:        &fakeAiff{format: stereo44k(), samples: []int{1}},
		sampleRate: 44100,
		channels:   2,
	}

	n, err := src.ReadSamples(nil)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
