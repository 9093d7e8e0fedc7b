package sim

import (
	"math/rand"
	"time"
)

// IncidentLevel is the severity stage of the emergency chain. Absent a
// resolving action it only moves forward, one level per timer expiry.
type IncidentLevel int

const (
	LevelNone IncidentLevel = iota
	LevelEngineSmoke
	LevelEngineFire
	LevelCabinSmoke
)

func (l IncidentLevel) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelEngineSmoke:
		return "engine smoke"
	case LevelEngineFire:
		return "engine fire"
	case LevelCabinSmoke:
		return "cabin smoke"
	default:
		return "unknown"
	}
}

// IncidentEngine owns the emergency state machine. The initial trigger is
// probabilistic; everything after it is a deterministic ladder of per-level
// timers, resolved only by the correct crew actions.
type IncidentEngine struct {
	cfg   IncidentConfig
	score ScoreConfig
	rng   *rand.Rand

	triggered    bool
	level        IncidentLevel
	ticksAtLevel int
	fireTicks    int
	mitigated    int
	unmitigated  int

	gearOverspeedOn bool
	lowAndSlowOn    bool
	smokeWarnOn     bool
}

func newIncidentEngine(cfg IncidentConfig, score ScoreConfig, seed int64) *IncidentEngine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &IncidentEngine{
		cfg:   cfg,
		score: score,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Level returns the current escalation level.
func (ie *IncidentEngine) Level() IncidentLevel { return ie.level }

// AffectedEngine returns the engine the emergency attacks.
func (ie *IncidentEngine) AffectedEngine() string { return ie.cfg.AffectedEngine }

// Update advances the hazard state by one tick. It runs after the integrator
// so risk checks see the tick's final kinematics.
func (ie *IncidentEngine) Update(st *AircraftState, dt float64) {
	if st.Terminal() || st.lostControl {
		return
	}

	eng := st.Engines[ie.cfg.AffectedEngine]

	// An unsuppressed fire on a running engine keeps damaging the airframe
	// at every level; long enough and the failure is uncontained.
	if eng != nil && eng.OnFire && eng.Running {
		ie.fireTicks++
		st.Score += ie.score.FireBurnTick
		if ie.fireTicks >= ie.cfg.FireCriticalT {
			st.lostControl = true
			st.logf("CRITICAL: %s suffers uncontained failure from prolonged fire", ie.cfg.AffectedEngine)
			return
		}
	}

	switch ie.level {
	case LevelNone:
		// One emergency per session: a chain the crew resolved stays resolved.
		if eng == nil || ie.triggered || ie.cfg.TriggerChance <= 0 {
			break
		}
		if st.Tick >= ie.cfg.EarliestTriggerTick && ie.rng.Float64() < ie.cfg.TriggerChance {
			ie.triggered = true
			ie.toLevel(LevelEngineSmoke)
			st.Score += ie.score.IncidentOnset
			st.logf("ALERT: %s oil pressure low, thin smoke trail observed", ie.cfg.AffectedEngine)
		}

	case LevelEngineSmoke:
		ie.ticksAtLevel++
		if eng != nil && !eng.Running && !eng.OnFire {
			// Fuel cut off before ignition: the smoke dissipates.
			if ie.ticksAtLevel >= ie.cfg.SmokeClearTicks {
				ie.toLevel(LevelNone)
				st.logf("%s smoke clearing after fuel cut-off", ie.cfg.AffectedEngine)
			}
			break
		}
		if ie.ticksAtLevel >= ie.cfg.SmokeToFireTicks {
			ie.toLevel(LevelEngineFire)
			if eng != nil {
				eng.OnFire = true
			}
			st.logf("ALERT: smoke worsens, %s FIRE warning active", ie.cfg.AffectedEngine)
		}

	case LevelEngineFire:
		ie.ticksAtLevel++
		if ie.ticksAtLevel >= ie.cfg.FireToCabinTicks {
			ie.toLevel(LevelCabinSmoke)
			st.CabinSmoke = true
			st.logf("CABIN REPORT: smoke entering cabin, immediate handling required")
		}

	case LevelCabinSmoke:
		if st.OxygenOn {
			ie.mitigated++
			ie.unmitigated = 0
			if ie.mitigated >= ie.cfg.OxygenRecoveryTicks {
				st.CabinSmoke = false
				if eng != nil && eng.OnFire {
					ie.toLevel(LevelEngineFire)
				} else {
					ie.toLevel(LevelNone)
				}
				st.logf("cabin air clearing on oxygen")
			}
			break
		}
		ie.unmitigated++
		if st.AltitudeFt > ie.cfg.SmokeWarnAltFt {
			st.Score += ie.score.CabinSmokeTick
			if !ie.smokeWarnOn {
				ie.smokeWarnOn = true
				st.logf("WARNING: heavy smoke at altitude, descend and use oxygen")
			}
		}
		if ie.unmitigated >= ie.cfg.CabinSmokeFatalTicks {
			st.lostControl = true
			st.logf("CRITICAL: crew incapacitated by cabin smoke")
			return
		}
	}

	ie.riskChecks(st)
}

// Extinguish discharges agent into an engine. It only works on a fire whose
// engine has been shut down; it de-escalates a fire by exactly one level and
// never skips the ladder.
func (ie *IncidentEngine) Extinguish(st *AircraftState, id string) bool {
	eng := st.Engines[id]
	if eng == nil || !eng.OnFire || eng.Running {
		return false
	}
	eng.OnFire = false
	ie.fireTicks = 0
	if ie.level == LevelEngineFire {
		ie.toLevel(LevelEngineSmoke)
	}
	return true
}

func (ie *IncidentEngine) toLevel(l IncidentLevel) {
	ie.level = l
	ie.ticksAtLevel = 0
	if l != LevelCabinSmoke {
		ie.mitigated = 0
		ie.unmitigated = 0
		ie.smokeWarnOn = false
	}
}

// riskChecks covers the operational hazards outside the escalation ladder.
// Penalties accrue every tick; the log entry fires once per episode.
func (ie *IncidentEngine) riskChecks(st *AircraftState) {
	if st.GearDown && st.AirspeedKt > ie.cfg.GearLimitKt {
		st.Score += ie.score.GearOverspeed
		if !ie.gearOverspeedOn {
			ie.gearOverspeedOn = true
			st.logf("DAMAGE: gear overspeed, structural stress increasing")
		}
	} else {
		ie.gearOverspeedOn = false
	}

	if st.AltitudeFt > 0 && st.AltitudeFt < ie.cfg.StallWarnAltFt && st.AirspeedKt < ie.cfg.StallWarnKt {
		st.Score += ie.score.LowAndSlowTick
		if !ie.lowAndSlowOn {
			ie.lowAndSlowOn = true
			st.logf("STALL WARNING near ground")
		}
	} else {
		ie.lowAndSlowOn = false
	}
}
