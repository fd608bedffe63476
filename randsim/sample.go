package randsim

// ShouldSampleWithRate draws a random float64 in [0, 1) from R and checks it
// against rate.
//
// rate should be in the range of [0, 1].
// When rate <= 0 this function always returns false;
// When rate >= 1 this function always returns true.
//
// Randomization policies use this to decide whether a given target is
// randomized at all during a pass.
func ShouldSampleWithRate(rate float64) bool {
	return R.Float64() < rate
}
