package capture

import "fmt"

// Config describes the capture format requested from a source.
type Config struct {
	SampleRate      int    // Hz
	Channels        int    // interleaved channel count
	FramesPerBuffer int    // samples per channel delivered per read
	Device          string // backend device name, "default" for the system default
}

// Source delivers frames in the exact order the device produced them.
//
// Read blocks until a frame is available or capture has stopped; ok=false
// signals the stop, while a zero-length frame with ok=true is a spurious read
// the caller should skip. Ownership of the returned frame transfers to the
// caller.
type Source interface {
	// Start begins delivering frames. It is idempotent and returns a
	// *DeviceError when the device cannot be opened or configured.
	Start() error

	// Read blocks for the next frame.
	Read() (frame []int16, ok bool)

	// Stop ends capture and unblocks any pending Read.
	Stop()
}

// DeviceError reports a capture device open or configure failure. It is fatal
// to the session: the driver loop never starts when Start returns one.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
