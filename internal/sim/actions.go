package sim

import "mayday-sim/internal/geometry/compass"

// ActionResolver validates and applies one command against the session. All
// player input degrades to a logged event: out-of-range values clamp,
// ineffective actions are reported and optionally scored, nothing panics and
// nothing escapes as a Go error.
type ActionResolver struct {
	physics   PhysicsConfig
	score     ScoreConfig
	incidents *IncidentEngine
}

func newActionResolver(cfg Config, incidents *IncidentEngine) *ActionResolver {
	return &ActionResolver{
		physics:   cfg.Physics,
		score:     cfg.Score,
		incidents: incidents,
	}
}

// Apply mutates the session for one command. Commands on a finished session
// are ignored: the state is frozen once the outcome is terminal.
func (r *ActionResolver) Apply(cmd Command, st *AircraftState) {
	if st.Terminal() {
		return
	}

	switch c := cmd.(type) {
	case ThrottleCommand:
		st.setThrottle(c.Percent)
		st.logf("throttle set to %.0f%%", st.ThrottlePct)

	case PitchCommand:
		st.setPitch(c.Degrees, r.physics)
		st.logf("pitch set to %+.0f deg", st.PitchDeg)

	case TurnCommand:
		deg := clampF(c.Degrees, 0, 180)
		if c.Direction == TurnLeft {
			st.TargetHeadingDeg = compass.Normalize(st.HeadingDeg - deg)
			st.logf("turning left %.0f deg to %03.0f", deg, st.TargetHeadingDeg)
		} else {
			st.TargetHeadingDeg = compass.Normalize(st.HeadingDeg + deg)
			st.logf("turning right %.0f deg to %03.0f", deg, st.TargetHeadingDeg)
		}

	case FlapsCommand:
		st.setFlaps(c.Setting)
		st.logf("flaps %d", st.Flaps)

	case GearCommand:
		st.GearDown = c.Down
		if c.Down {
			st.logf("gear down")
		} else {
			st.logf("gear up")
		}

	case MaydayCommand:
		r.applyMayday(st)

	case ShutdownCommand:
		r.applyShutdown(c, st)

	case FireBottleCommand:
		r.applyFireBottle(c, st)

	case OxygenCommand:
		r.applyOxygen(c, st)

	case HoldCommand:
		// Controls held; the clock does the rest.

	case StatusCommand, HelpCommand, QuitCommand:
		// Presentation directives, nothing to do in the core.

	default:
		st.logf("unknown command rejected")
	}
}

// applyMayday is idempotent: the declaration and its score bonus happen once.
// Declaring before the fire breaks out earns the full bonus.
func (r *ActionResolver) applyMayday(st *AircraftState) {
	if st.MaydayDeclared {
		st.logf("ATC: emergency already declared")
		return
	}
	st.MaydayDeclared = true
	if r.incidents.Level() < LevelEngineFire {
		st.Score += r.score.Mayday
	} else {
		st.Score += r.score.LateMayday
	}
	st.logf("ATC: MAYDAY received, cleared direct to diversion field")
}

func (r *ActionResolver) applyShutdown(c ShutdownCommand, st *AircraftState) {
	eng, ok := st.Engines[c.Engine]
	if !ok {
		st.logf("no such engine %q", c.Engine)
		return
	}
	if !eng.Running {
		st.logf("%s already off", c.Engine)
		return
	}
	eng.Running = false
	if c.Engine == r.incidents.AffectedEngine() && r.incidents.Level() >= LevelEngineSmoke {
		st.Score += r.score.ShutdownAffected
		st.logf("%s shutdown complete", c.Engine)
		if eng.OnFire {
			st.logf("fire intensity reducing after fuel cut-off")
		}
	} else {
		// Shutting down a healthy engine throws away thrust for nothing.
		st.Score += r.score.ShutdownHealthy
		st.logf("%s shutdown complete (no fault indicated)", c.Engine)
	}
}

func (r *ActionResolver) applyFireBottle(c FireBottleCommand, st *AircraftState) {
	if st.FireBottleUsed {
		st.logf("no fire bottles remaining")
		return
	}

	target := c.Engine
	if target == "" {
		for _, id := range st.engineIDs {
			if st.Engines[id].OnFire {
				target = id
				break
			}
		}
	}
	if target == "" {
		st.logf("no active engine fire")
		return
	}

	eng, ok := st.Engines[target]
	if !ok {
		st.logf("no such engine %q", target)
		return
	}
	if !eng.OnFire {
		st.logf("no active fire on %s", target)
		return
	}
	if eng.Running {
		// Agent disperses in the airflow of a running engine.
		st.Score += r.score.Ineffective
		st.logf("bottle ineffective: %s still running, shut it down first", target)
		return
	}

	if r.incidents.Extinguish(st, target) {
		st.FireBottleUsed = true
		st.Score += r.score.FireBottle
		st.logf("%s fire warning extinguished", target)
	}
}

func (r *ActionResolver) applyOxygen(c OxygenCommand, st *AircraftState) {
	st.OxygenOn = c.On
	if !c.On {
		st.logf("crew oxygen masks off")
		return
	}
	if st.CabinSmoke && !st.oxygenCredited {
		st.oxygenCredited = true
		st.Score += r.score.Oxygen
		st.logf("crew oxygen masks on, smoke impact reduced")
		return
	}
	st.logf("crew oxygen masks on")
}
