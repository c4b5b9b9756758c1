package transcription

import (
	"errors"
	"testing"
)

func TestNewWithoutEngineBuild(t *testing.T) {
	_, err := New(Config{ModelPath: "models/test", SampleRate: 16000}, nil)
	if err == nil {
		t.Fatal("New() error = nil, want engine-less build failure")
	}
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("New() error = %v, want to wrap ErrModelUnavailable", err)
	}
}

func TestDisabledSink(t *testing.T) {
	var sink Disabled

	if sink.Available() {
		t.Error("Available() = true, want false")
	}
	if err := sink.Feed([]int16{1, 2, 3}); err != nil {
		t.Errorf("Feed() error = %v, want nil", err)
	}
	text, err := sink.Flush()
	if err != nil {
		t.Errorf("Flush() error = %v, want nil", err)
	}
	if text != "" {
		t.Errorf("Flush() text = %q, want empty", text)
	}
}
