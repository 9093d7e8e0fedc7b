// Package compass provides heading arithmetic on the [0, 360) circle.
package compass

import "math"

// Normalize wraps a heading in degrees to [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Delta returns the signed shortest rotation from current to target in
// degrees, in (-180, 180]. Positive means a right turn.
func Delta(current, target float64) float64 {
	d := math.Mod(target-current+540, 360) - 180
	if d == -180 {
		return 180
	}
	return d
}

// Within reports whether current is inside tol degrees of target along the
// shortest arc.
func Within(current, target, tol float64) bool {
	return math.Abs(Delta(current, target)) <= tol
}

// Step moves current toward target by at most maxStep degrees along the
// shortest arc, snapping to target when closer than the step.
func Step(current, target, maxStep float64) float64 {
	d := Delta(current, target)
	if math.Abs(d) <= maxStep {
		return Normalize(target)
	}
	if d > 0 {
		return Normalize(current + maxStep)
	}
	return Normalize(current - maxStep)
}
