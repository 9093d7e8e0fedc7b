package sim

import (
	"fmt"

	"mayday-sim/internal/geometry/compass"
)

// Outcome is the terminal classification of a session. It starts InProgress
// and is set exactly once by the landing evaluator.
type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeLandedSafely
	OutcomeCrashLanded
	OutcomeLostControl
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInProgress:
		return "in progress"
	case OutcomeLandedSafely:
		return "landed safely"
	case OutcomeCrashLanded:
		return "crash landed"
	case OutcomeLostControl:
		return "lost control"
	default:
		return "unknown"
	}
}

// EngineState is the per-engine condition. The engine set is fixed when the
// session is created.
type EngineState struct {
	Running bool
	OnFire  bool
}

// AircraftState is the single mutable record for one session. The sim engine
// goroutine is its only owner; everyone else sees value-copied Snapshots.
// Setters clamp to the legal envelope instead of rejecting.
type AircraftState struct {
	Tick int

	AltitudeFt       float64
	AirspeedKt       float64
	HeadingDeg       float64
	TargetHeadingDeg float64
	PitchDeg         float64
	BankDeg          float64
	ThrottlePct      float64
	Flaps            int
	GearDown         bool
	DistanceNM       float64

	Engines   map[string]*EngineState
	engineIDs []string

	CabinSmoke     bool
	OxygenOn       bool
	MaydayDeclared bool
	FireBottleUsed bool

	Score    int
	EventLog []string
	Outcome  Outcome

	// lostControl is raised by the incident engine; the landing evaluator
	// turns it into a terminal outcome so touchdown classification keeps
	// priority over it.
	lostControl bool
	// oxygenCredited keeps the oxygen-during-smoke bonus one-shot.
	oxygenCredited bool
}

func newAircraftState(cfg Config) *AircraftState {
	st := &AircraftState{
		AltitudeFt:       cfg.InitialAltitudeFt,
		AirspeedKt:       cfg.InitialAirspeedKt,
		HeadingDeg:       compass.Normalize(cfg.InitialHeadingDeg),
		TargetHeadingDeg: compass.Normalize(cfg.InitialHeadingDeg),
		ThrottlePct:      cfg.InitialThrottle,
		DistanceNM:       cfg.InitialDistanceNM,
		Engines:          make(map[string]*EngineState, len(cfg.EngineIDs)),
		engineIDs:        append([]string(nil), cfg.EngineIDs...),
	}
	for _, id := range cfg.EngineIDs {
		st.Engines[id] = &EngineState{Running: true}
	}
	return st
}

// Terminal reports whether the session has reached an end state.
func (st *AircraftState) Terminal() bool { return st.Outcome != OutcomeInProgress }

// RunningEngines returns how many engines are producing thrust.
func (st *AircraftState) RunningEngines() int {
	n := 0
	for _, e := range st.Engines {
		if e.Running {
			n++
		}
	}
	return n
}

// setThrottle clamps to [0, 100].
func (st *AircraftState) setThrottle(pct float64) {
	st.ThrottlePct = clampF(pct, 0, 100)
}

func (st *AircraftState) setPitch(deg float64, p PhysicsConfig) {
	st.PitchDeg = clampF(deg, p.MinPitchDeg, p.MaxPitchDeg)
}

func (st *AircraftState) setBank(deg float64, p PhysicsConfig) {
	st.BankDeg = clampF(deg, -p.MaxBankDeg, p.MaxBankDeg)
}

// setFlaps clamps to the discrete [0, 3] range.
func (st *AircraftState) setFlaps(setting int) {
	if setting < 0 {
		setting = 0
	}
	if setting > 3 {
		setting = 3
	}
	st.Flaps = setting
}

// logf appends a timestamped entry to the session event log.
func (st *AircraftState) logf(format string, args ...any) {
	entry := fmt.Sprintf("T+%02d %s", st.Tick, fmt.Sprintf(format, args...))
	st.EventLog = append(st.EventLog, entry)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
