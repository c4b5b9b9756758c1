//go:build vosk && !whisper

// The Vosk engine requires libvosk and its headers at link time via
// LIBRARY_PATH and C_INCLUDE_PATH.

package transcription

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	vosk "github.com/alphacep/vosk-api/go"

	"github.com/TensorKartDev/eva/internal/audio"
	"github.com/TensorKartDev/eva/internal/vad"
)

// Recognizer is the Vosk-backed sink. Samples accumulate inside the Vosk
// recognizer between flushes; Flush finalizes, resets the recognizer, and
// extracts the "text" field from the result JSON.
type Recognizer struct {
	model  *vosk.VoskModel
	rec    *vosk.VoskRecognizer
	logger *slog.Logger
	ready  bool
}

// Compile-time assertion that Recognizer satisfies vad.Sink.
var _ vad.Sink = (*Recognizer)(nil)

// newEngine constructs the Vosk engine for this build.
func newEngine(cfg Config, logger *slog.Logger) (vad.Sink, error) {
	return NewRecognizer(cfg, logger)
}

// NewRecognizer loads the Vosk model and creates a recognizer bound to the
// configured sample rate.
func NewRecognizer(cfg Config, logger *slog.Logger) (*Recognizer, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty: %w", ErrModelUnavailable)
	}
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d: %w", cfg.SampleRate, ErrModelUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}

	model, err := vosk.NewModel(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load Vosk model at %s: %v: %w", cfg.ModelPath, err, ErrModelUnavailable)
	}

	rec, err := vosk.NewRecognizer(model, float64(cfg.SampleRate))
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("failed to create Vosk recognizer: %v: %w", err, ErrModelUnavailable)
	}
	rec.SetMaxAlternatives(0)
	rec.SetWords(0)

	return &Recognizer{
		model:  model,
		rec:    rec,
		logger: logger,
		ready:  true,
	}, nil
}

// Available reports whether the recognizer is ready.
func (r *Recognizer) Available() bool {
	return r.ready
}

// Feed appends samples to the recognizer's accumulation buffer. No-op when
// the recognizer is not ready.
func (r *Recognizer) Feed(samples []int16) error {
	if !r.ready || len(samples) == 0 {
		return nil
	}
	r.rec.AcceptWaveform(audio.SamplesToBytes(samples))
	return nil
}

// Flush finalizes everything fed since the last flush, resets the recognizer,
// and returns the recognized text. Flushing with nothing fed returns empty
// text; calling it twice in a row does not re-emit a stale result.
func (r *Recognizer) Flush() (string, error) {
	if !r.ready {
		return "", nil
	}

	raw := r.rec.FinalResult()
	r.rec.Reset()

	var result struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", fmt.Errorf("failed to parse recognizer result: %w", err)
	}

	return strings.TrimSpace(result.Text), nil
}

// Close releases the recognizer and model. The sink must not be used after
// Close.
func (r *Recognizer) Close() error {
	if !r.ready {
		return nil
	}
	r.ready = false
	r.rec.Free()
	r.model.Free()
	return nil
}
