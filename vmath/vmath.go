package vmath

// Scalar helpers shared by the tween and render packages
// All interpolation runs in float64; values are small (screen cells,
// camera depths, intensities), so fixed-point is unnecessary here

// Clamp01 clamps v to [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates from a to b by t
// t is not clamped; callers clamp progress before easing
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
