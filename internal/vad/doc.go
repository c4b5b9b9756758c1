// Package vad implements loudness-gated voice activity detection.
// A Detector consumes one fixed-size PCM frame at a time together with its
// dBFS level, debounces the speech decision with hysteresis counters, and
// drives segment boundaries on a transcription sink.
package vad
