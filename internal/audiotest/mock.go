// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource generates audio data for tests. It implements the
// audio.Source interface (without importing it, to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // total samples per channel to generate
	generated    int // samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a mock audio source. totalSamples is the
// number of samples per channel; waveform maps (sample, channel) to a
// value.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float32 {
		return 0.0
	})
}

// NewSineSource generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewCounterSource generates strictly increasing values scaled into
// (0, 1], one per sample, for ordering and integrity checks.
func NewCounterSource(sampleRate, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, 1, totalSamples, func(sample, channel int) float32 {
		return float32(sample%32767+1) / 32767.0
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be read again.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesRequested := len(dst) / m.channels
	framesToWrite := min(framesRequested, m.totalSamples-m.generated)

	for frame := 0; frame < framesToWrite; frame++ {
		sampleIndex := m.generated + frame
		for ch := 0; ch < m.channels; ch++ {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	written := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return written, io.EOF
	}

	return written, nil
}

// CaptureSink collects everything written to it. It implements the
// audio.Sink interface.
type CaptureSink struct {
	Samples []float32
	Closed  bool

	// ChunkLimit, when positive, caps how many samples one
	// WriteSamples call accepts, to exercise partial-write handling.
	ChunkLimit int
}

func (c *CaptureSink) WriteSamples(src []float32) (int, error) {
	n := len(src)
	if c.ChunkLimit > 0 && n > c.ChunkLimit {
		n = c.ChunkLimit
	}

	c.Samples = append(c.Samples, src[:n]...)
	return n, nil
}

func (c *CaptureSink) Close() error {
	c.Closed = true
	return nil
}
