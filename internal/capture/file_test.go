package capture

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/TensorKartDev/eva/internal/audio"
)

func writeTestWAV(t *testing.T, samples []int16, sampleRate int) string {
	t.Helper()

	data, err := audio.EncodeWAV(samples, sampleRate)
	if err != nil {
		t.Fatalf("EncodeWAV() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "input.wav")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func testCaptureConfig() Config {
	return Config{
		SampleRate:      16000,
		Channels:        1,
		FramesPerBuffer: 4,
		Device:          "default",
	}
}

func TestFileSourceReplaysInFrames(t *testing.T) {
	samples := []int16{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	path := writeTestWAV(t, samples, 16000)

	src := NewFileSource(path, testCaptureConfig())
	if err := src.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	wantFrames := [][]int16{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10}}
	for i, want := range wantFrames {
		frame, ok := src.Read()
		if !ok {
			t.Fatalf("Read() ok = false on frame %d", i)
		}
		if len(frame) != len(want) {
			t.Fatalf("frame %d length = %d, want %d", i, len(frame), len(want))
		}
		for j := range want {
			if frame[j] != want[j] {
				t.Errorf("frame %d sample %d = %d, want %d", i, j, frame[j], want[j])
			}
		}
	}

	if _, ok := src.Read(); ok {
		t.Error("Read() ok = true after the file drained, want false")
	}
}

func TestFileSourceSampleRateMismatch(t *testing.T) {
	path := writeTestWAV(t, []int16{1, 2, 3, 4}, 8000)

	src := NewFileSource(path, testCaptureConfig())
	err := src.Start()
	if err == nil {
		t.Fatal("Start() error = nil, want sample rate mismatch")
	}

	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Errorf("Start() error type = %T, want *DeviceError", err)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "missing.wav"), testCaptureConfig())

	err := src.Start()
	if err == nil {
		t.Fatal("Start() error = nil, want open failure")
	}

	var devErr *DeviceError
	if !errors.As(err, &devErr) {
		t.Fatalf("Start() error type = %T, want *DeviceError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Start() error = %v, want to wrap os.ErrNotExist", err)
	}
}

func TestFileSourceStopEndsReplay(t *testing.T) {
	path := writeTestWAV(t, []int16{1, 2, 3, 4, 5, 6, 7, 8}, 16000)

	src := NewFileSource(path, testCaptureConfig())
	if err := src.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if _, ok := src.Read(); !ok {
		t.Fatal("Read() ok = false before Stop")
	}

	src.Stop()
	if _, ok := src.Read(); ok {
		t.Error("Read() ok = true after Stop, want false")
	}
}

func TestFileSourceReadBeforeStart(t *testing.T) {
	src := NewFileSource("unused.wav", testCaptureConfig())
	if _, ok := src.Read(); ok {
		t.Error("Read() ok = true before Start, want false")
	}
}
