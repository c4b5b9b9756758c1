package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/TensorKartDev/eva/internal/audio"
)

func segmentFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "segment-*.wav"))
	if err != nil {
		t.Fatalf("Glob() error = %v", err)
	}
	return matches
}

func TestSegmentRecorderWritesOneFilePerSegment(t *testing.T) {
	dir := t.TempDir()
	inner := &recordingSink{flushText: "hello"}
	rec := NewSegmentRecorder(inner, dir, 16000, testLogger())

	if err := rec.Feed([]int16{1, 2, 3}); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if err := rec.Feed([]int16{4, 5}); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	text, err := rec.Flush()
	if err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if text != "hello" {
		t.Errorf("Flush() text = %q, want %q", text, "hello")
	}
	if inner.fedFrames != 2 || inner.flushCalls != 1 {
		t.Errorf("inner sink saw %d feeds and %d flushes, want 2 and 1", inner.fedFrames, inner.flushCalls)
	}

	files := segmentFiles(t, dir)
	if len(files) != 1 {
		t.Fatalf("found %d segment files, want 1", len(files))
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	samples, rate, err := audio.DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}
	if rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	want := []int16{1, 2, 3, 4, 5}
	if len(samples) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(samples), len(want))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, samples[i], want[i])
		}
	}
}

func TestSegmentRecorderFlushWithoutAudioWritesNothing(t *testing.T) {
	dir := t.TempDir()
	inner := &recordingSink{}
	rec := NewSegmentRecorder(inner, dir, 16000, testLogger())

	if _, err := rec.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if files := segmentFiles(t, dir); len(files) != 0 {
		t.Errorf("found %d segment files after an empty flush, want 0", len(files))
	}
	if inner.flushCalls != 1 {
		t.Errorf("inner flush called %d times, want 1 (always forwarded)", inner.flushCalls)
	}
}

func TestSegmentRecorderClearsBufferBetweenSegments(t *testing.T) {
	dir := t.TempDir()
	inner := &recordingSink{}
	rec := NewSegmentRecorder(inner, dir, 16000, testLogger())

	if err := rec.Feed([]int16{1, 2}); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if _, err := rec.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := rec.Feed([]int16{9}); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if _, err := rec.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	files := segmentFiles(t, dir)
	if len(files) != 2 {
		t.Fatalf("found %d segment files, want 2", len(files))
	}

	// The second segment must contain only what was fed after the first
	// flush.
	data, err := os.ReadFile(files[1])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	samples, _, err := audio.DecodeWAV(data)
	if err != nil {
		t.Fatalf("DecodeWAV() error = %v", err)
	}
	if len(samples) != 1 || samples[0] != 9 {
		t.Errorf("second segment samples = %v, want [9]", samples)
	}
}

func TestSegmentRecorderReportsInnerAvailability(t *testing.T) {
	rec := NewSegmentRecorder(&recordingSink{}, t.TempDir(), 16000, testLogger())
	if !rec.Available() {
		t.Error("Available() = false with an available inner sink")
	}
}
