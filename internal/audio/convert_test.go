package audio

import "testing"

func TestBytesToSamples(t *testing.T) {
	// Little-endian pairs: 0x0102 = 258, 0xFFFF = -1.
	data := []byte{0x02, 0x01, 0xFF, 0xFF}

	samples, err := BytesToSamples(data)
	if err != nil {
		t.Fatalf("BytesToSamples() error = %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0] != 258 || samples[1] != -1 {
		t.Errorf("samples = %v, want [258 -1]", samples)
	}
}

func TestBytesToSamplesOddLength(t *testing.T) {
	if _, err := BytesToSamples([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Error("expected error for odd-length input")
	}
}

func TestSamplesToBytesRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32768}

	back, err := BytesToSamples(SamplesToBytes(samples))
	if err != nil {
		t.Fatalf("BytesToSamples() error = %v", err)
	}
	if len(back) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(back), len(samples))
	}
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("sample %d = %d, want %d", i, back[i], samples[i])
		}
	}
}
