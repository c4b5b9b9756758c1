//go:build cgo

package capture

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/TensorKartDev/eva/internal/audio"
)

// DeviceSource captures from the system microphone through miniaudio. The
// platform audio thread pushes frames into a blocking queue; the consumer
// goroutine pulls them with Read.
type DeviceSource struct {
	cfg   Config
	queue *frameQueue

	ctx     *malgo.AllocatedContext
	device  *malgo.Device
	started bool
	stop    sync.Once
}

// NewDeviceSource creates an unstarted microphone source.
func NewDeviceSource(cfg Config) *DeviceSource {
	return &DeviceSource{
		cfg:   cfg,
		queue: newFrameQueue(),
	}
}

// Start opens and starts the capture device. Calling Start on a running
// source is a no-op.
func (s *DeviceSource) Start() error {
	if s.started {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return &DeviceError{Op: "init audio context", Err: err}
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = uint32(s.cfg.Channels)
	deviceConfig.SampleRate = uint32(s.cfg.SampleRate)
	deviceConfig.PeriodSizeInFrames = uint32(s.cfg.FramesPerBuffer)
	deviceConfig.Alsa.NoMMap = 1

	if id, ok := findDeviceID(ctx, s.cfg.Device); ok {
		deviceConfig.Capture.DeviceID = id.Pointer()
	}

	onFrames := func(_, input []byte, _ uint32) {
		if len(input) == 0 {
			return
		}
		samples, err := audio.BytesToSamples(input)
		if err != nil {
			return
		}
		s.queue.push(samples)
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onFrames})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return &DeviceError{Op: "open capture device", Err: err}
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return &DeviceError{Op: "start capture device", Err: err}
	}

	s.ctx = ctx
	s.device = device
	s.started = true
	return nil
}

// Read blocks for the next captured frame. ok=false once the source stopped
// and the queue drained.
func (s *DeviceSource) Read() ([]int16, bool) {
	return s.queue.pop()
}

// Stop halts capture and unblocks pending reads. Safe to call more than once
// and from a different goroutine than Read.
func (s *DeviceSource) Stop() {
	s.stop.Do(func() {
		if s.device != nil {
			s.device.Uninit()
		}
		if s.ctx != nil {
			_ = s.ctx.Uninit()
			s.ctx.Free()
		}
		s.queue.close()
	})
}

// findDeviceID resolves a configured device name against the capture device
// list. The system default is used for "", "default", or an unknown name.
func findDeviceID(ctx *malgo.AllocatedContext, name string) (malgo.DeviceID, bool) {
	if name == "" || name == "default" {
		return malgo.DeviceID{}, false
	}
	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return malgo.DeviceID{}, false
	}
	for _, info := range infos {
		if info.Name() == name {
			return info.ID, true
		}
	}
	return malgo.DeviceID{}, false
}

// ListDevices prints the available capture devices to operator output. It
// never fails; enumeration problems are reported as "none found".
func ListDevices() {
	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		fmt.Println("No capture devices found (audio context unavailable).")
		return
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil || len(infos) == 0 {
		fmt.Println("No capture devices found.")
		return
	}

	fmt.Println("Capture devices:")
	for _, info := range infos {
		marker := ""
		if info.IsDefault != 0 {
			marker = " (default)"
		}
		fmt.Printf("- %s%s\n", info.Name(), marker)
	}
}
