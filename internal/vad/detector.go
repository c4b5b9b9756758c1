package vad

import (
	"fmt"
	"log/slog"
)

// Sink consumes raw speech samples and produces finalized text on request.
// It is defined on the consumer side so any engine (Vosk, whisper.cpp, a
// disabled stub, or a test fake) can satisfy it.
type Sink interface {
	// Available reports whether the engine initialized successfully.
	Available() bool

	// Feed appends samples to the engine's accumulation buffer.
	// It is a no-op when the engine is unavailable.
	Feed(samples []int16) error

	// Flush returns the best-effort transcription of everything fed since the
	// last flush and clears the engine's internal state. When nothing was fed
	// (or the engine is unavailable) it returns empty text without error.
	Flush() (string, error)
}

// Config contains the hysteresis parameters of the detector.
type Config struct {
	// TriggerThresholdDBFS is the loudness above which a frame counts as
	// speech-like.
	TriggerThresholdDBFS float64

	// TriggerFrames is the number of consecutive speech-like frames required
	// to confirm speech onset.
	TriggerFrames int

	// ReleaseFrames is the number of frames an ongoing segment is kept alive
	// after loudness drops below the threshold, so short pauses do not chop
	// an utterance mid-word.
	ReleaseFrames int
}

// DefaultConfig returns the detector parameters used by the original pipeline.
func DefaultConfig() Config {
	return Config{
		TriggerThresholdDBFS: -35.0,
		TriggerFrames:        10,
		ReleaseFrames:        20,
	}
}

// State identifies the segment state of the detector.
type State int

const (
	// StateIdle means no speech segment is open.
	StateIdle State = iota
	// StateActive means a speech segment is open and being fed to the sink.
	StateActive
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EventType identifies a detector event.
type EventType int

const (
	// EventSpeechDetected fires when the trigger debounce confirms speech.
	// It may fire repeatedly across a long utterance; each firing re-arms the
	// release window in full.
	EventSpeechDetected EventType = iota

	// EventTranscription carries the sink's flushed text for a closed segment.
	EventTranscription

	// EventNoSpeech marks a closed segment whose flush produced empty text.
	EventNoSpeech
)

// Event is a detector output produced while processing a frame.
type Event struct {
	Type  EventType
	Level float64 // dBFS that confirmed onset, for EventSpeechDetected
	Text  string  // finalized text, for EventTranscription
}

// Stats is a snapshot of detector counters for monitoring.
type Stats struct {
	FramesProcessed   uint64 `json:"frames_processed"`
	FramesSkipped     uint64 `json:"frames_skipped"`
	SpeechDetections  uint64 `json:"speech_detections"`
	SegmentsStarted   uint64 `json:"segments_started"`
	SegmentsCompleted uint64 `json:"segments_completed"`
}

// Detector is the segmentation state machine. It owns its hysteresis counters
// exclusively and must be driven from a single goroutine; the per-frame path
// therefore needs no locking.
type Detector struct {
	cfg    Config
	sink   Sink
	logger *slog.Logger

	// hysteresis counters
	hot  int // consecutive speech-like frames since the last reset
	hold int // remaining keep-alive frames for the open segment

	// segment state
	active   bool
	hasAudio bool // whether any samples reached the sink this segment

	stats Stats
}

// NewDetector creates a detector. sink may be nil for a VAD-only session;
// segment state is still tracked but no feed or flush calls are issued.
func NewDetector(cfg Config, sink Sink, logger *slog.Logger) (*Detector, error) {
	if cfg.TriggerFrames < 1 {
		return nil, fmt.Errorf("trigger_frames must be at least 1, got %d", cfg.TriggerFrames)
	}
	if cfg.ReleaseFrames < 0 {
		return nil, fmt.Errorf("release_frames cannot be negative, got %d", cfg.ReleaseFrames)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Detector{
		cfg:    cfg,
		sink:   sink,
		logger: logger,
	}, nil
}

// ProcessFrame advances the state machine by one frame and returns the events
// it produced (zero, one, or two). level is the frame's loudness in dBFS.
//
// Zero-length frames are spurious reads: they are skipped entirely and do not
// advance the counters. Sink failures are logged and the counters keep
// tracking state for subsequent frames.
func (d *Detector) ProcessFrame(frame []int16, level float64) []Event {
	if len(frame) == 0 {
		d.stats.FramesSkipped++
		return nil
	}
	d.stats.FramesProcessed++

	var events []Event
	speechLike := level > d.cfg.TriggerThresholdDBFS

	if speechLike {
		d.hot++
		if d.hot >= d.cfg.TriggerFrames {
			d.hold = d.cfg.ReleaseFrames
			d.hot = 0
			d.stats.SpeechDetections++
			events = append(events, Event{Type: EventSpeechDetected, Level: level})
		}
	} else {
		d.hot = 0
	}

	// Decremented every frame, including the frame that armed it, so the
	// effective keep-alive window is ReleaseFrames frames.
	if d.hold > 0 {
		d.hold--
	}

	if speechLike || d.hold > 0 {
		if !d.active {
			d.stats.SegmentsStarted++
		}
		d.active = true
		d.hasAudio = true
		if d.sinkEnabled() {
			if err := d.sink.Feed(frame); err != nil {
				d.logger.Error("Sink feed failed",
					slog.Int("samples", len(frame)),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	if !speechLike && d.hold == 0 && d.active {
		d.active = false
		d.stats.SegmentsCompleted++
		if d.sinkEnabled() && d.hasAudio {
			text, err := d.sink.Flush()
			switch {
			case err != nil:
				d.logger.Error("Sink flush failed", slog.String("error", err.Error()))
			case text != "":
				events = append(events, Event{Type: EventTranscription, Text: text})
			default:
				events = append(events, Event{Type: EventNoSpeech})
			}
		}
		d.hasAudio = false
	}

	return events
}

// State returns the current segment state.
func (d *Detector) State() State {
	if d.active {
		return StateActive
	}
	return StateIdle
}

// HasAudio reports whether the open segment has fed any samples to the sink.
func (d *Detector) HasAudio() bool {
	return d.hasAudio
}

// Stats returns a snapshot of the detector counters.
func (d *Detector) Stats() Stats {
	return d.stats
}

func (d *Detector) sinkEnabled() bool {
	return d.sink != nil && d.sink.Available()
}
