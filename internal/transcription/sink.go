package transcription

import (
	"errors"
	"log/slog"

	"github.com/TensorKartDev/eva/internal/vad"
)

// ErrModelUnavailable indicates the engine could not be initialized. It is
// non-fatal: the session downgrades to VAD-only mode once and never
// re-evaluates per frame.
var ErrModelUnavailable = errors.New("transcription engine unavailable")

// Config describes how to construct the build-selected engine.
type Config struct {
	// ModelPath locates the acoustic model on disk.
	ModelPath string

	// SampleRate is the rate of the PCM samples fed to the engine. It must
	// match the capture configuration.
	SampleRate int
}

// New constructs the engine compiled into this build. Engine-less builds and
// failed model loads return an error wrapping ErrModelUnavailable; callers
// should fall back to the Disabled sink.
func New(cfg Config, logger *slog.Logger) (vad.Sink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return newEngine(cfg, logger)
}

// Disabled is the sink for sessions without transcription. Every call is a
// no-op, which keeps the detector's call sites uniform.
type Disabled struct{}

// Available always reports false.
func (Disabled) Available() bool { return false }

// Feed discards the samples.
func (Disabled) Feed([]int16) error { return nil }

// Flush returns empty text.
func (Disabled) Flush() (string, error) { return "", nil }

var _ vad.Sink = Disabled{}
