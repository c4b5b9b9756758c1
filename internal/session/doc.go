// Package session wires the capture source, level meter, detector, and
// transcription sink into the single-threaded driver loop of a running
// session.
package session
