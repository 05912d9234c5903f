// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/vibrationalforce/echoelstream/audio"
	"github.com/vibrationalforce/echoelstream/pcm"
)

// pcmReader is the slice of gomp3.Decoder the source needs, kept as an
// interface so tests can stand in for the real decoder.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return 2 }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	// go-mp3 hands back interleaved 16-bit little-endian stereo.
	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		return 0, err
	}

	return pcm.DecodeInt16LE(dst, s.buf[:n]), err
}

// Decoder wraps go-mp3. Output is always stereo regardless of the
// encoded channel count; go-mp3 upmixes mono itself.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec, sampleRate: dec.SampleRate()}, nil
}
