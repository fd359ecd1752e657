package playback

import "math"

const cueGain = 0.08

// SineTone generates a mono sine waveform at the given frequency.
func SineTone(frequency float64, duration float64, sampleRate int, gain float64) []float32 {
	n := int(float64(sampleRate) * duration)
	samples := make([]float32, n)

	step := 2 * math.Pi * frequency / float64(sampleRate)
	for i := range samples {
		samples[i] = float32(gain * math.Sin(step*float64(i)))
	}

	return samples
}
