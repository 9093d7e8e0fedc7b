package env

import "math"

// Wind represents a steady wind. Direction follows aviation convention:
// FromDeg is the true bearing the wind blows from, so a FromDeg equal to the
// aircraft heading is a pure headwind.
type Wind struct {
	// SpeedKt is the wind speed in knots.
	SpeedKt float64
	// FromDeg is the direction the wind blows from, degrees true.
	FromDeg float64
}

// Apply adjusts the tick's closure toward the field by the head/tailwind
// component along the current heading. Wind changes the ground track, not
// the indicated airspeed.
func (w Wind) Apply(dt float64, k Kinematics) (Kinematics, string) {
	rel := (k.HeadingDeg - w.FromDeg) * math.Pi / 180
	headwindKt := w.SpeedKt * math.Cos(rel)
	k.ClosureNM -= headwindKt * dt / 3600
	return k, ""
}

// Calm returns a Wind with zero velocity (no wind).
func Calm() Wind {
	return Wind{}
}
