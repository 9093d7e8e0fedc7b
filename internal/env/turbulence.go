package env

import "math/rand"

// Turbulence perturbs altitude with bounded random jolts. It is intended for
// demo flavor; unit tests use NoOp or a seeded source for determinism.
type Turbulence struct {
	// AmplitudeFt is the maximum altitude excursion per simulated second.
	AmplitudeFt float64
	// R is the random source. A nil source makes the effect a no-op.
	R *rand.Rand
}

// Apply jitters altitude within +/- AmplitudeFt per second of simulated time.
// A strong jolt is surfaced as a warning so the crew sees it in the log.
func (t Turbulence) Apply(dt float64, k Kinematics) (Kinematics, string) {
	if t.R == nil || t.AmplitudeFt <= 0 {
		return k, ""
	}
	jolt := (t.R.Float64()*2 - 1) * t.AmplitudeFt * dt
	k.AltitudeFt += jolt
	if k.AltitudeFt < 0 {
		k.AltitudeFt = 0
	}
	if jolt < -0.8*t.AmplitudeFt*dt {
		return k, "turbulence: strong downdraft"
	}
	return k, ""
}
