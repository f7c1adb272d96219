package sampling

// SampleTimestamps produces at most maxSamples timestamps, uniformly spaced,
// strictly within [0, duration), sorted ascending, first element always 0.
// The result is deterministic for identical inputs. A non-positive duration
// yields an empty result; callers substitute a default window instead of
// aborting.
func SampleTimestamps(duration float64, maxSamples int) []float64 {
	if duration <= 0 || maxSamples < 1 {
		return nil
	}

	step := duration / float64(maxSamples)
	timestamps := make([]float64, 0, maxSamples)
	for i := 0; i < maxSamples; i++ {
		ts := float64(i) * step
		if ts >= duration {
			break
		}
		timestamps = append(timestamps, ts)
	}
	return timestamps
}
