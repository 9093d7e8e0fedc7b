package env

// Kinematics is the slice of aircraft state the environment is allowed to
// act on during one tick: barometric altitude, indicated airspeed, the
// current heading, and the distance closed toward the diversion field this
// tick (negative means the aircraft is opening the range).
type Kinematics struct {
	AltitudeFt float64
	AirspeedKt float64
	HeadingDeg float64
	ClosureNM  float64
}

// Environment is an interface for applying environmental effects to the
// aircraft. Each implementation can modify the tick's kinematics based on
// factors like wind or turbulence.
type Environment interface {
	// Apply takes the kinematics computed by the integrator for this tick
	// and returns the adjusted kinematics plus an optional warning message.
	// The dt parameter is the simulated time step in seconds.
	Apply(dt float64, k Kinematics) (Kinematics, string)
}

// Chain is a composite environment that applies multiple effects in sequence.
type Chain struct {
	Effects []Environment
}

// Apply applies all environment effects in the chain, in order. The
// kinematics pass through each effect in sequence, with the output of one
// effect becoming the input to the next. The last non-empty warning message
// is returned.
func (c *Chain) Apply(dt float64, k Kinematics) (Kinematics, string) {
	var warning string
	for _, effect := range c.Effects {
		next, w := effect.Apply(dt, k)
		if w != "" {
			warning = w
		}
		k = next
	}
	return k, warning
}

// NoOp is an environment that does nothing.
var NoOp Environment = noOpEnv{}

type noOpEnv struct{}

func (noOpEnv) Apply(dt float64, k Kinematics) (Kinematics, string) {
	return k, ""
}
