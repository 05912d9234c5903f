// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/vibrationalforce/echoelstream/pcm"
)

// WriteWAV16 writes a complete canonical-header PCM 16-bit WAV in one
// call. The sample slice is interleaved when channels > 1.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	bytesPerFrame := uint32(channels) * 2
	dataSize := uint32(len(samples)) * 2

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*bytesPerFrame)
	binary.LittleEndian.PutUint16(header[32:34], uint16(bytesPerFrame))
	binary.LittleEndian.PutUint16(header[34:36], 16)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	// Flush the payload in bounded chunks so large captures do not
	// double their footprint in one conversion buffer.
	const chunkSamples = 8192
	buf := make([]byte, min(len(samples), chunkSamples)*2)

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// Writer is an audio.Sink that encodes incoming float32 samples as a
// PCM 16-bit WAV through go-audio's encoder. The destination must be
// seekable because the encoder patches the RIFF sizes on Close.
type Writer struct {
	enc *gowav.Encoder
	buf *goaudio.IntBuffer
}

// NewWriter prepares a WAV sink writing to ws. Close finalizes the
// header and must be called for the file to be playable.
func NewWriter(ws io.WriteSeeker, sampleRate, channels int) *Writer {
	return &Writer{
		enc: gowav.NewEncoder(ws, sampleRate, 16, channels, 1),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

func (w *Writer) WriteSamples(src []float32) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}

	if cap(w.buf.Data) < len(src) {
		w.buf.Data = make([]int, len(src))
	}
	w.buf.Data = w.buf.Data[:len(src)]

	for i, v := range src {
		w.buf.Data[i] = int(pcm.Float32ToInt16(v))
	}

	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	return len(src), nil
}

func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
