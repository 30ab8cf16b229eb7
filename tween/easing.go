package tween

// EasingFunc remaps normalized progress in [0, 1]
//
// Two families share this signature and must not be confused:
// position interpolants (Linear, EaseOutCubic) satisfy ease(0)=0,
// ease(1)=1 and are monotonic, so they are safe to feed into Lerp;
// intensity envelopes (Impact, FlashPulse) start at full strength and
// decay to zero, so ease(1)=0 and they are only meaningful for
// magnitudes like shake or flash brightness, never for positions
type EasingFunc func(p float64) float64

// Linear is the identity interpolant
func Linear(p float64) float64 {
	return p
}

// EaseOutCubic decelerates into the target: 1 - (1-p)^3
// The default feel for camera and color transitions
func EaseOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

// Impact is an intensity envelope: (1-p)^2
// Sharp onset, fast decay; used for screen shake magnitude
func Impact(p float64) float64 {
	inv := 1 - p
	return inv * inv
}

// FlashPulse is an intensity envelope: (1-p)^4
// Near-instant decay; used for full-screen flash brightness
func FlashPulse(p float64) float64 {
	inv := 1 - p
	inv *= inv
	return inv * inv
}
