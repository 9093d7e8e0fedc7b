package sim

import (
	"math"

	"mayday-sim/internal/env"
	"mayday-sim/internal/geometry/compass"
)

// DynamicsIntegrator advances the kinematic fields of an AircraftState by one
// tick. It is purely numeric: it never appends log entries, the incident
// engine and landing evaluator interpret the resulting state.
type DynamicsIntegrator struct {
	cfg         PhysicsConfig
	fieldBrgDeg float64
	environment env.Environment
}

func newDynamicsIntegrator(cfg PhysicsConfig, fieldBearingDeg float64, environment env.Environment) *DynamicsIntegrator {
	if environment == nil {
		environment = env.NoOp
	}
	return &DynamicsIntegrator{cfg: cfg, fieldBrgDeg: fieldBearingDeg, environment: environment}
}

// Advance integrates airspeed, altitude, heading/bank and field closure over
// dt simulated seconds. The returned warning (if any) comes from the
// environment chain and is logged by the engine.
func (d *DynamicsIntegrator) Advance(st *AircraftState, dt float64) string {
	p := d.cfg

	// Airspeed moves toward the throttle-derived target at a bounded rate.
	target := d.targetSpeed(st)
	st.AirspeedKt = approach(st.AirspeedKt, target, p.AccelKtPerSec*dt, p.DecelKtPerSec*dt)
	st.AirspeedKt = clampF(st.AirspeedKt, 0, p.MaxSpeedKt)

	// Altitude rate couples pitch with available energy.
	climbFpm := d.climbRate(st)
	st.AltitudeFt += climbFpm / 60 * dt

	// Bank follows the heading error, heading rate follows bank. The
	// heading step is capped at the remaining error so a long tick cannot
	// overshoot the target and oscillate.
	d.advanceHeading(st, dt)

	// Ground closure toward the diversion field along the current heading.
	// The scenario is a straight-in, so the field bears the runway heading
	// and closure degrades with any misalignment from it.
	alignment := math.Cos(compass.Delta(st.HeadingDeg, d.fieldBrgDeg) * math.Pi / 180)
	closure := st.AirspeedKt * alignment * dt / 3600

	k, warning := d.environment.Apply(dt, env.Kinematics{
		AltitudeFt: st.AltitudeFt,
		AirspeedKt: st.AirspeedKt,
		HeadingDeg: st.HeadingDeg,
		ClosureNM:  closure,
	})
	st.AltitudeFt = k.AltitudeFt
	st.AirspeedKt = clampF(k.AirspeedKt, 0, p.MaxSpeedKt)
	st.DistanceNM = math.Max(0, st.DistanceNM-k.ClosureNM)

	st.AltitudeFt = clampF(st.AltitudeFt, 0, p.MaxAltitudeFt)
	return warning
}

// targetSpeed derives the speed the airframe trends toward from throttle,
// thrust available and drag configuration.
func (d *DynamicsIntegrator) targetSpeed(st *AircraftState) float64 {
	p := d.cfg

	target := st.ThrottlePct / 100 * p.MaxLevelSpeedKt

	// Lost engines derate achievable speed proportionally.
	if total := len(st.Engines); total > 0 {
		target *= float64(st.RunningEngines()) / float64(total)
	}

	target -= float64(st.Flaps) * p.FlapsDragKt
	if st.GearDown {
		target -= p.GearDragKt
	}
	// Climbing trades speed for altitude.
	if st.PitchDeg > 0 {
		target -= st.PitchDeg * p.PitchTradeKt
	}
	return math.Max(0, target)
}

// climbRate returns the altitude rate in feet per minute.
func (d *DynamicsIntegrator) climbRate(st *AircraftState) float64 {
	p := d.cfg

	// No airspeed means no lift, whatever the pitch.
	if st.AirspeedKt <= 0 {
		return -p.NoAirspeedSinkFpm
	}

	stallKt := p.stallSpeed(st.Flaps)
	if st.PitchDeg > 0 && st.AirspeedKt < stallKt {
		// Pitching up without the energy to climb degrades altitude.
		return -(p.StallSinkFpm + st.PitchDeg*p.StallPitchPenaltyFpm)
	}

	speedFactor := clampF(st.AirspeedKt/p.ClimbReferenceKt, 0, 1.2)
	fpm := st.PitchDeg * p.ClimbFpmPerPitchDeg * speedFactor
	fpm += (st.ThrottlePct - p.CruiseThrottlePct) * p.ThrottleClimbFpmPct
	fpm -= p.BaseSinkFpm

	lost := len(st.Engines) - st.RunningEngines()
	fpm -= float64(lost) * p.EngineOutSinkFpm

	if st.Flaps >= 2 {
		fpm -= p.FlapsSinkFpm
	}
	if st.GearDown {
		fpm -= p.GearSinkFpm
	}
	return fpm
}

func (d *DynamicsIntegrator) advanceHeading(st *AircraftState, dt float64) {
	p := d.cfg

	errDeg := compass.Delta(st.HeadingDeg, st.TargetHeadingDeg)
	wantBank := clampF(errDeg*p.BankPerHeadingErr, -p.MaxBankDeg, p.MaxBankDeg)
	st.setBank(approach(st.BankDeg, wantBank, p.RollRateDegPerSec*dt, p.RollRateDegPerSec*dt), p)

	// Zero bank holds heading.
	if st.BankDeg == 0 {
		return
	}
	step := math.Abs(st.BankDeg) * p.TurnRatePerBankDeg * dt
	st.HeadingDeg = compass.Step(st.HeadingDeg, st.TargetHeadingDeg, step)
}

// approach moves cur toward target, limited to up and down steps. Matches the
// bounded-rate smoothing the rest of the integrator uses.
func approach(cur, target, up, down float64) float64 {
	diff := target - cur
	if diff > up {
		return cur + up
	}
	if diff < -down {
		return cur - down
	}
	return target
}
