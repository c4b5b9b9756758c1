//go:build !vosk && !whisper

package transcription

import (
	"fmt"
	"log/slog"

	"github.com/TensorKartDev/eva/internal/vad"
)

// newEngine reports that no engine was compiled into this build.
func newEngine(_ Config, _ *slog.Logger) (vad.Sink, error) {
	return nil, fmt.Errorf("no engine in this build (use -tags vosk or -tags whisper): %w", ErrModelUnavailable)
}
