// Package capture supplies fixed-size PCM-16 frames from an audio input.
// The platform microphone backend (miniaudio via malgo, cgo builds) and the
// WAV replay source share one Source interface; the consumer never needs to
// know which backend is active.
package capture
