package vmath

import "math"

// Ellipse containment for pointer hit-testing against scene shapes

// TerminalAspect compensates for character cells being roughly twice
// as tall as they are wide; multiply a cell-space Y delta by this to
// work in visually circular space
const TerminalAspect = 2.0

// EllipseDistSq returns the normalized squared distance of (dx, dy)
// from an ellipse center with radii rx, ry
// Result <= 1 means the point is inside or on the boundary
func EllipseDistSq(dx, dy, rx, ry float64) float64 {
	if rx <= 0 || ry <= 0 {
		return math.MaxFloat64
	}
	nx := dx / rx
	ny := dy / ry
	return nx*nx + ny*ny
}

// EllipseContains returns true if point offset (dx, dy) lies inside
// or on an ellipse with radii rx, ry
func EllipseContains(dx, dy, rx, ry float64) bool {
	return EllipseDistSq(dx, dy, rx, ry) <= 1
}
