package audio

// Column is one pixel column of the waveform: the true minimum and maximum
// sample value inside its bucket. A min/max envelope, not RMS or averaging,
// so short transients stay visible at any zoom level.
type Column struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// Envelope partitions the samples into width equal buckets
// (step = ceil(n/width)) and computes the min/max pair per bucket.
// Re-rendering at a new width reuses the same decoded samples; the result
// depends only on (samples, width).
func Envelope(samples []float32, width int) []Column {
	if width <= 0 {
		return nil
	}

	cols := make([]Column, width)
	if len(samples) == 0 {
		return cols
	}

	step := (len(samples) + width - 1) / width
	for i := 0; i < width; i++ {
		start := i * step
		if start >= len(samples) {
			break
		}
		end := start + step
		if end > len(samples) {
			end = len(samples)
		}

		min, max := samples[start], samples[start]
		for _, s := range samples[start+1 : end] {
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
		}
		cols[i] = Column{Min: min, Max: max}
	}
	return cols
}
