// Package metrics defines the Prometheus metrics for the capture and
// segmentation pipeline, exposed through the monitoring HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for a capture session.
type Metrics struct {
	// Capture metrics
	FramesCaptured prometheus.Counter
	EmptyReads     prometheus.Counter
	FrameLevel     prometheus.Histogram

	// Segmentation metrics
	SpeechDetections  prometheus.Counter
	SegmentsStarted   prometheus.Counter
	SegmentsCompleted prometheus.Counter

	// Transcription metrics
	Transcriptions      prometheus.Counter
	EmptyTranscriptions prometheus.Counter
}

// New creates and registers all metrics with the default registry.
func New() *Metrics {
	return &Metrics{
		FramesCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_frames_captured_total",
			Help: "Total number of non-empty audio frames pulled from the capture source",
		}),
		EmptyReads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_empty_reads_total",
			Help: "Total number of spurious zero-length capture reads",
		}),
		FrameLevel: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eva_frame_level_dbfs",
			Help:    "Per-frame loudness in dBFS",
			Buckets: prometheus.LinearBuckets(-100, 10, 11), // -100 dBFS to 0 dBFS
		}),
		SpeechDetections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_speech_detections_total",
			Help: "Total number of confirmed speech onsets (including mid-segment re-arms)",
		}),
		SegmentsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_segments_started_total",
			Help: "Total number of speech segments opened",
		}),
		SegmentsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_segments_completed_total",
			Help: "Total number of speech segments closed",
		}),
		Transcriptions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_transcriptions_total",
			Help: "Total number of segments that produced transcription text",
		}),
		EmptyTranscriptions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eva_empty_transcriptions_total",
			Help: "Total number of segments whose flush produced no text",
		}),
	}
}

// RecordFrame records a processed frame and its loudness.
func (m *Metrics) RecordFrame(levelDBFS float64) {
	m.FramesCaptured.Inc()
	m.FrameLevel.Observe(levelDBFS)
}

// RecordEmptyRead records a spurious zero-length read.
func (m *Metrics) RecordEmptyRead() {
	m.EmptyReads.Inc()
}

// RecordSpeechDetection records a confirmed speech onset.
func (m *Metrics) RecordSpeechDetection() {
	m.SpeechDetections.Inc()
}

// RecordSegmentStarted records an opened speech segment.
func (m *Metrics) RecordSegmentStarted() {
	m.SegmentsStarted.Inc()
}

// RecordSegmentCompleted records a closed speech segment.
func (m *Metrics) RecordSegmentCompleted() {
	m.SegmentsCompleted.Inc()
}

// RecordTranscription records a segment flush result.
func (m *Metrics) RecordTranscription(empty bool) {
	if empty {
		m.EmptyTranscriptions.Inc()
		return
	}
	m.Transcriptions.Inc()
}
