// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vibrationalforce/echoelstream/audio"
	"github.com/vibrationalforce/echoelstream/pcm"
)

// wavSource streams PCM 16-bit frames from the data chunk.
type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]

	n, err := io.ReadFull(s.r, s.buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, fmt.Errorf("%w", err)
	}

	samples := pcm.DecodeInt16LE(dst, s.buf[:n])
	if samples == 0 {
		return 0, io.EOF
	}

	return samples, nil
}

// Decoder reads canonical 44-byte-header PCM 16-bit WAV streams. It
// works on a plain io.Reader, unlike go-audio's decoder, which needs
// an io.ReadSeeker and therefore cannot sit on a network stream.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 44)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.Equal(header[:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}
	if !bytes.Equal(header[12:16], []byte("fmt ")) {
		return nil, ErrUnsupportedWavLayout
	}

	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	channels := int(binary.LittleEndian.Uint16(header[22:24]))
	sampleRate := int(binary.LittleEndian.Uint32(header[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(header[34:36]))

	if audioFormat != 1 || bitsPerSample != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}
	if !bytes.Equal(header[36:40], []byte("data")) {
		return nil, ErrUnsupportedWavChunks
	}

	return &wavSource{
		r:          r,
		sampleRate: sampleRate,
		channels:   channels,
	}, nil
}
