package audio

import "fmt"

// BytesToSamples decodes little-endian PCM-16 bytes into samples.
// The input length must be even.
func BytesToSamples(data []byte) ([]int16, error) {
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("PCM data length must be even, got %d bytes", len(data))
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(data[2*i]) | int16(data[2*i+1])<<8
	}
	return samples, nil
}

// SamplesToBytes encodes samples as little-endian PCM-16 bytes.
func SamplesToBytes(samples []int16) []byte {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		data[2*i] = byte(s)
		data[2*i+1] = byte(uint16(s) >> 8)
	}
	return data
}
