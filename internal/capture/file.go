package capture

import (
	"fmt"
	"os"
	"sync"

	"github.com/TensorKartDev/eva/internal/audio"
)

// FileSource replays a mono PCM-16 WAV file as a sequence of capture frames.
// It serves the pipeline in offline runs and tests through the same Source
// interface as the microphone backend.
type FileSource struct {
	path string
	cfg  Config

	mu      sync.Mutex
	samples []int16
	pos     int
	started bool
	stopped bool
}

// NewFileSource creates an unstarted WAV replay source.
func NewFileSource(path string, cfg Config) *FileSource {
	return &FileSource{path: path, cfg: cfg}
}

// Start loads and decodes the WAV file. Calling Start on a started source is
// a no-op. A sample-rate mismatch with the configured rate is an error since
// it would shift every loudness window.
func (s *FileSource) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return &DeviceError{Op: "open replay file", Err: err}
	}

	samples, rate, err := audio.DecodeWAV(data)
	if err != nil {
		return &DeviceError{Op: "decode replay file", Err: err}
	}
	if rate != s.cfg.SampleRate {
		return &DeviceError{
			Op:  "configure replay file",
			Err: fmt.Errorf("sample rate %d Hz does not match configured %d Hz", rate, s.cfg.SampleRate),
		}
	}

	s.samples = samples
	s.started = true
	return nil
}

// Read returns the next frame of the replayed file, the trailing partial
// frame last, then ok=false.
func (s *FileSource) Read() ([]int16, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.stopped || s.pos >= len(s.samples) {
		return nil, false
	}

	end := s.pos + s.cfg.FramesPerBuffer*s.cfg.Channels
	if end > len(s.samples) {
		end = len(s.samples)
	}
	frame := s.samples[s.pos:end]
	s.pos = end
	return frame, true
}

// Stop ends the replay early.
func (s *FileSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
}
