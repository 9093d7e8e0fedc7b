package sim

import (
	"strings"

	"mayday-sim/internal/geometry/compass"
)

// LandingEvaluator classifies the flight outcome once per tick. Touchdown
// classification takes priority over a pending loss of control raised by the
// incident engine in the same tick.
type LandingEvaluator struct {
	cfg   LandingConfig
	score ScoreConfig
}

func newLandingEvaluator(cfg LandingConfig, score ScoreConfig) *LandingEvaluator {
	return &LandingEvaluator{cfg: cfg, score: score}
}

// Evaluate inspects the state and sets a terminal outcome when one applies.
func (e *LandingEvaluator) Evaluate(st *AircraftState) {
	if st.Terminal() {
		return
	}

	if st.AltitudeFt <= 0 {
		st.AltitudeFt = 0
		if violations := e.envelopeViolations(st); len(violations) == 0 {
			st.Outcome = OutcomeLandedSafely
			st.Score += e.score.SafeLanding
			st.logf("TOUCHDOWN: landed safely at the diversion field")
		} else {
			st.Outcome = OutcomeCrashLanded
			st.Score += e.score.CrashLanding
			st.logf("RUNWAY ACCIDENT: %s", strings.Join(violations, ", "))
		}
		return
	}

	if st.lostControl {
		st.Outcome = OutcomeLostControl
		st.logf("FLIGHT LOST: control could not be maintained")
	}
}

// envelopeViolations lists every landing criterion the touchdown state
// breaks. All must hold at once for a safe landing.
func (e *LandingEvaluator) envelopeViolations(st *AircraftState) []string {
	var v []string
	if st.DistanceNM > e.cfg.RunwayCaptureNM {
		v = append(v, "touched down short of the field")
	}
	lo := e.cfg.ApproachRefKt - e.cfg.ApproachBandKt
	hi := e.cfg.ApproachRefKt + e.cfg.ApproachBandKt
	if st.AirspeedKt < lo || st.AirspeedKt > hi {
		v = append(v, "airspeed outside approach band")
	}
	if !compass.Within(st.HeadingDeg, e.cfg.RunwayHeadingDeg, e.cfg.HeadingTolDeg) {
		v = append(v, "not aligned with the runway")
	}
	if !st.GearDown {
		v = append(v, "gear up")
	}
	if st.Flaps < e.cfg.MinLandingFlaps {
		v = append(v, "flaps short of landing setting")
	}
	return v
}
