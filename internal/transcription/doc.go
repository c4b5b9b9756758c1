// Package transcription provides the speech-to-text engines that back the
// detector's sink. The engine is selected at build time: "-tags vosk" wires
// the Vosk recognizer, "-tags whisper" wires the whisper.cpp bindings, and
// the default build ships only the Disabled sink so the session can run in
// VAD-only mode.
package transcription
