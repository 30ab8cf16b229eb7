package vmath

// Vec3 is a float64 3D vector
// Used for camera flight paths and scene-space positions
type Vec3 struct {
	X, Y, Z float64
}

// V3Lerp interpolates componentwise from a to b by t
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}
