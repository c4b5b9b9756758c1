// Package audio provides PCM-16 primitives shared by the capture and
// transcription layers: loudness measurement (RMS/dBFS), little-endian
// byte conversion, and a minimal WAV codec for replay input and segment dumps.
package audio
