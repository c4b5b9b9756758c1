//go:build !cgo

package capture

import (
	"errors"
	"fmt"
)

// DeviceSource is the microphone backend placeholder for builds without cgo.
// Start always fails with a DeviceError; the WAV replay source remains
// available.
type DeviceSource struct {
	cfg Config
}

// NewDeviceSource creates a source whose Start always fails on this build.
func NewDeviceSource(cfg Config) *DeviceSource {
	return &DeviceSource{cfg: cfg}
}

// Start reports that microphone capture is unavailable.
func (s *DeviceSource) Start() error {
	return &DeviceError{
		Op:  "open capture device",
		Err: errors.New("audio capture is not supported in this build (cgo disabled)"),
	}
}

// Read never delivers frames on this build.
func (s *DeviceSource) Read() ([]int16, bool) {
	return nil, false
}

// Stop is a no-op on this build.
func (s *DeviceSource) Stop() {}

// ListDevices reports that no devices can be enumerated on this build.
func ListDevices() {
	fmt.Println("Audio capture not supported in this build.")
}
