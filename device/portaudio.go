// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"
)

var (
	paMu    sync.Mutex
	paCount int
)

// initPortAudio reference-counts portaudio.Initialize so independent
// captures can share the library.
func initPortAudio() error {
	paMu.Lock()
	defer paMu.Unlock()

	if paCount == 0 {
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("portaudio initialization failed: %w", err)
		}
	}
	paCount++

	return nil
}

func terminatePortAudio() {
	paMu.Lock()
	defer paMu.Unlock()

	paCount--
	if paCount <= 0 {
		_ = portaudio.Terminate()
		paCount = 0
	}
}

// matchInput picks an input device by name: exact match wins, then
// substring, devices without input channels never match.
func matchInput(devices []*portaudio.DeviceInfo, name string) *portaudio.DeviceInfo {
	var partial *portaudio.DeviceInfo

	for _, dev := range devices {
		if dev == nil || dev.MaxInputChannels == 0 {
			continue
		}
		if dev.Name == name {
			return dev
		}
		if partial == nil && name != "" && strings.Contains(dev.Name, name) {
			partial = dev
		}
	}

	return partial
}
