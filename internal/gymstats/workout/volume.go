package workout

// ExerciseVolume returns the dot product of reps and weights.
// It is lenient: if either sequence is missing or their lengths differ the volume is 0,
// volume being advisory only.
func ExerciseVolume(reps []int, weights []float64) float64 {
	if reps == nil || weights == nil || len(reps) != len(weights) {
		return 0
	}

	var volume float64
	for i := range reps {
		volume += float64(reps[i]) * weights[i]
	}
	return volume
}

// SessionVolume sums the volume of all exercises, always computed from reps and weights,
// never from cached values.
func SessionVolume(exercises []Exercise) float64 {
	var volume float64
	for _, e := range exercises {
		volume += ExerciseVolume(e.Reps, e.Weights)
	}
	return volume
}
