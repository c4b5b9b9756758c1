//go:build whisper

// The whisper engine requires the whisper.cpp static library (libwhisper.a)
// and headers at link time via LIBRARY_PATH and C_INCLUDE_PATH.

package transcription

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/TensorKartDev/eva/internal/vad"
)

// Whisper is the whisper.cpp-backed sink. whisper.cpp is a batch engine, so
// samples are buffered in memory and inference runs once per flush.
type Whisper struct {
	model  whisperlib.Model
	logger *slog.Logger
	buf    []float32
}

// Compile-time assertion that Whisper satisfies vad.Sink.
var _ vad.Sink = (*Whisper)(nil)

// newEngine constructs the whisper engine for this build.
func newEngine(cfg Config, logger *slog.Logger) (vad.Sink, error) {
	return NewWhisper(cfg, logger)
}

// NewWhisper loads the whisper.cpp model from disk. The configured sample
// rate must be 16000 Hz, the only rate whisper.cpp accepts.
func NewWhisper(cfg Config, logger *slog.Logger) (*Whisper, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty: %w", ErrModelUnavailable)
	}
	if cfg.SampleRate != 16000 {
		return nil, fmt.Errorf("whisper.cpp requires 16000 Hz input, got %d: %w", cfg.SampleRate, ErrModelUnavailable)
	}
	if logger == nil {
		logger = slog.Default()
	}

	model, err := whisperlib.New(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load whisper model at %s: %v: %w", cfg.ModelPath, err, ErrModelUnavailable)
	}

	return &Whisper{
		model:  model,
		logger: logger,
	}, nil
}

// Available reports whether the model is loaded.
func (w *Whisper) Available() bool {
	return w.model != nil
}

// Feed converts samples to float32 and appends them to the inference buffer.
func (w *Whisper) Feed(samples []int16) error {
	if w.model == nil {
		return nil
	}
	for _, s := range samples {
		w.buf = append(w.buf, float32(s)/32768.0)
	}
	return nil
}

// Flush runs batch inference over the buffered samples and returns the joined
// segment text. The buffer is cleared regardless of the inference outcome, so
// a second flush returns empty text.
func (w *Whisper) Flush() (string, error) {
	if w.model == nil || len(w.buf) == 0 {
		return "", nil
	}

	pcm := w.buf
	w.buf = nil

	// Contexts are not reusable across inferences; the model is.
	wctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("failed to create whisper context: %w", err)
	}

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper inference failed: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read whisper segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, " "), nil
}

// Close releases the model. The sink must not be used after Close.
func (w *Whisper) Close() error {
	if w.model == nil {
		return nil
	}
	err := w.model.Close()
	w.model = nil
	w.buf = nil
	return err
}
