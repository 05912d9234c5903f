// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"github.com/vibrationalforce/echoelstream/ring"
	"github.com/vibrationalforce/echoelstream/stream"
)

// CaptureConfig selects the input device and stream layout.
type CaptureConfig struct {
	// Device is matched against portaudio device names; empty picks
	// the system default input.
	Device string

	// SampleRate of 0 uses the device default.
	SampleRate float64

	// Channels of 0 uses all input channels the device offers.
	Channels int
}

// Capture runs a portaudio input stream whose callback produces into a
// ring. The callback runs on the audio thread: it never blocks, and
// samples that do not fit are dropped and counted on the meter.
type Capture struct {
	pa       *portaudio.Stream
	rb       *ring.Ring[float32]
	meter    *stream.Meter
	sig      *stream.Signal
	rate     float64
	channels int
}

// OpenCapture initializes portaudio, resolves the device and opens the
// stream. The stream is not running until Start.
func OpenCapture(cfg CaptureConfig, rb *ring.Ring[float32], meter *stream.Meter, sig *stream.Signal) (*Capture, error) {
	if err := initPortAudio(); err != nil {
		return nil, err
	}

	dev, err := resolveInput(cfg.Device)
	if err != nil {
		terminatePortAudio()
		return nil, err
	}

	c := &Capture{rb: rb, meter: meter, sig: sig}

	params := portaudio.HighLatencyParameters(dev, nil)
	if cfg.Channels > 0 {
		params.Input.Channels = cfg.Channels
	}
	if cfg.SampleRate > 0 {
		params.SampleRate = cfg.SampleRate
	}

	pa, err := portaudio.OpenStream(params, c.callback)
	if err != nil {
		terminatePortAudio()
		return nil, fmt.Errorf("%w", err)
	}

	c.pa = pa
	c.rate = params.SampleRate
	c.channels = params.Input.Channels

	return c, nil
}

func resolveInput(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		dev, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		return dev, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	dev := matchInput(devices, name)
	if dev == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchDevice, name)
	}

	return dev, nil
}

func (c *Capture) callback(input []float32) {
	pushAll(c.rb, c.meter, input)
	c.sig.Raise()
}

// pushAll copies as much of in as fits, going around the wrap point
// when needed. The shortfall counts as one overrun.
func pushAll(rb *ring.Ring[float32], meter *stream.Meter, in []float32) {
	for range 2 {
		if len(in) == 0 {
			return
		}

		region := rb.PeekWrite()
		if len(region) == 0 {
			break
		}

		n := copy(region, in)
		rb.CommitWrite(n)
		in = in[n:]
	}

	if len(in) > 0 {
		meter.Overrun()
	}
}

// SampleRate reports the opened stream rate.
func (c *Capture) SampleRate() float64 { return c.rate }

// Channels reports the opened input channel count.
func (c *Capture) Channels() int { return c.channels }

// Start begins delivering callbacks.
func (c *Capture) Start() error {
	if err := c.pa.Start(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Close stops the stream and releases portaudio.
func (c *Capture) Close() error {
	err := c.pa.Stop()
	if cerr := c.pa.Close(); err == nil {
		err = cerr
	}

	terminatePortAudio()

	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
