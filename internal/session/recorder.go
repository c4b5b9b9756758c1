package session

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/TensorKartDev/eva/internal/audio"
	"github.com/TensorKartDev/eva/internal/vad"
)

// SegmentRecorder wraps a sink and writes each flushed segment to dir as a
// WAV file for debugging. Write failures are logged and never interfere with
// transcription.
type SegmentRecorder struct {
	inner      vad.Sink
	dir        string
	sampleRate int
	logger     *slog.Logger

	samples []int16
	seq     int
}

// Compile-time assertion that SegmentRecorder satisfies vad.Sink.
var _ vad.Sink = (*SegmentRecorder)(nil)

// NewSegmentRecorder wraps inner so every fed segment is also dumped to dir.
func NewSegmentRecorder(inner vad.Sink, dir string, sampleRate int, logger *slog.Logger) *SegmentRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &SegmentRecorder{
		inner:      inner,
		dir:        dir,
		sampleRate: sampleRate,
		logger:     logger,
	}
}

// Available reports the wrapped sink's availability.
func (s *SegmentRecorder) Available() bool {
	return s.inner.Available()
}

// Feed copies the samples into the current segment buffer and forwards them.
func (s *SegmentRecorder) Feed(samples []int16) error {
	s.samples = append(s.samples, samples...)
	return s.inner.Feed(samples)
}

// Flush writes the buffered segment to disk and forwards the flush.
func (s *SegmentRecorder) Flush() (string, error) {
	if len(s.samples) > 0 {
		s.writeSegment()
		s.samples = nil
	}
	return s.inner.Flush()
}

func (s *SegmentRecorder) writeSegment() {
	data, err := audio.EncodeWAV(s.samples, s.sampleRate)
	if err != nil {
		s.logger.Error("Failed to encode segment WAV", slog.String("error", err.Error()))
		return
	}

	s.seq++
	name := fmt.Sprintf("segment-%04d-%s.wav", s.seq, time.Now().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		s.logger.Error("Failed to write segment WAV",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return
	}

	s.logger.Debug("Segment written",
		slog.String("path", path),
		slog.Int("samples", len(s.samples)),
	)
}
