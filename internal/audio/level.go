package audio

import "math"

const (
	// FullScale is the reference magnitude for dBFS conversion, the absolute
	// value of the most negative 16-bit sample.
	FullScale = 32768.0

	// epsilon keeps log10 finite on perfectly silent frames.
	epsilon = 1e-9
)

// RMS computes the root-mean-square of a frame of signed 16-bit samples using
// double-precision accumulation. An empty frame has an RMS of 0.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}

	var acc float64
	for _, s := range samples {
		f := float64(s)
		acc += f * f
	}

	return math.Sqrt(acc / float64(len(samples)))
}

// DBFS converts a frame of signed 16-bit samples to decibels relative to full
// scale. 0 dBFS corresponds to a full-scale signal; silence yields roughly
// -270 dBFS rather than negative infinity.
//
// The function is pure and safe for concurrent use.
func DBFS(samples []int16) float64 {
	return 20 * math.Log10((RMS(samples)+epsilon)/FullScale)
}
