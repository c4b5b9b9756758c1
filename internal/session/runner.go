package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/TensorKartDev/eva/internal/audio"
	"github.com/TensorKartDev/eva/internal/capture"
	"github.com/TensorKartDev/eva/internal/metrics"
	"github.com/TensorKartDev/eva/internal/vad"
)

// Stats is a snapshot of session counters for logging and the /stats
// endpoint.
type Stats struct {
	FramesRead uint64    `json:"frames_read"`
	EmptyReads uint64    `json:"empty_reads"`
	State      string    `json:"state"`
	Detector   vad.Stats `json:"detector"`
}

// Runner pulls frames from the capture source and pushes them through the
// level meter and detector. Exactly one goroutine runs the loop; Stats may be
// read concurrently.
type Runner struct {
	logger   *slog.Logger
	source   capture.Source
	detector *vad.Detector
	metrics  *metrics.Metrics
	out      io.Writer

	mu    sync.RWMutex
	stats Stats
}

// NewRunner creates a session runner. Events are printed to out; metrics may
// be nil when monitoring is disabled.
func NewRunner(logger *slog.Logger, source capture.Source, detector *vad.Detector, m *metrics.Metrics, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		logger:   logger,
		source:   source,
		detector: detector,
		metrics:  m,
		out:      out,
	}
}

// Run drives the session until the capture source stops or ctx is cancelled.
// Cancellation is checked at every blocking-read return; an Active segment at
// shutdown is abandoned without a final flush.
func (r *Runner) Run(ctx context.Context) error {
	for {
		frame, ok := r.source.Read()

		if err := ctx.Err(); err != nil {
			r.logger.Info("Session cancelled", slog.String("reason", err.Error()))
			return nil
		}
		if !ok {
			r.logger.Info("Capture source stopped")
			return nil
		}

		if len(frame) == 0 {
			// Spurious read: no loudness sample, counters untouched.
			r.recordEmptyRead()
			continue
		}

		level := audio.DBFS(frame)
		prevState := r.detector.State()
		events := r.detector.ProcessFrame(frame, level)
		r.recordFrame(level, prevState)

		for _, ev := range events {
			r.emit(ev)
		}
	}
}

// Stats returns a snapshot of the session counters.
func (r *Runner) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

func (r *Runner) emit(ev vad.Event) {
	switch ev.Type {
	case vad.EventSpeechDetected:
		fmt.Fprintf(r.out, "[VAD] Speech detected (%.1f dBFS)\n", ev.Level)
		if r.metrics != nil {
			r.metrics.RecordSpeechDetection()
		}
	case vad.EventTranscription:
		fmt.Fprintf(r.out, "[Transcription] %s\n", ev.Text)
		if r.metrics != nil {
			r.metrics.RecordTranscription(false)
		}
	case vad.EventNoSpeech:
		fmt.Fprintln(r.out, "[Transcription] (no speech recognised)")
		if r.metrics != nil {
			r.metrics.RecordTranscription(true)
		}
	}
}

func (r *Runner) recordFrame(level float64, prevState vad.State) {
	state := r.detector.State()

	r.mu.Lock()
	r.stats.FramesRead++
	r.stats.State = state.String()
	r.stats.Detector = r.detector.Stats()
	r.mu.Unlock()

	if r.metrics == nil {
		return
	}
	r.metrics.RecordFrame(level)
	if prevState == vad.StateIdle && state == vad.StateActive {
		r.metrics.RecordSegmentStarted()
	}
	if prevState == vad.StateActive && state == vad.StateIdle {
		r.metrics.RecordSegmentCompleted()
	}
}

func (r *Runner) recordEmptyRead() {
	r.mu.Lock()
	r.stats.EmptyReads++
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.RecordEmptyRead()
	}
}
