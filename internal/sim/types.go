package sim

import (
	"time"
)

// EngineSnapshot is the read-only per-engine view.
type EngineSnapshot struct {
	ID      string `json:"id"`
	Running bool   `json:"running"`
	OnFire  bool   `json:"onFire"`
}

// Snapshot is a value copy of the session handed to the presentation layer
// (HUD, API, demo driver). Mutating it has no effect on the session.
type Snapshot struct {
	Tick int       `json:"tick"`
	TS   time.Time `json:"ts"`

	AltitudeFt       float64 `json:"altitudeFt"`
	AirspeedKt       float64 `json:"airspeedKt"`
	HeadingDeg       float64 `json:"headingDeg"`
	TargetHeadingDeg float64 `json:"targetHeadingDeg"`
	PitchDeg         float64 `json:"pitchDeg"`
	BankDeg          float64 `json:"bankDeg"`
	ThrottlePct      float64 `json:"throttlePct"`
	Flaps            int     `json:"flaps"`
	GearDown         bool    `json:"gearDown"`
	DistanceNM       float64 `json:"distanceNm"`

	Engines []EngineSnapshot `json:"engines"`

	IncidentLevel string `json:"incidentLevel"`
	CabinSmoke    bool   `json:"cabinSmoke"`
	OxygenOn      bool   `json:"oxygenOn"`
	Mayday        bool   `json:"maydayDeclared"`
	FireBottle    bool   `json:"fireBottleAvailable"`

	Score   int      `json:"score"`
	Outcome string   `json:"outcome"`
	Events  []string `json:"events"`

	Warning string `json:"warning,omitempty"`
}

func snapshotOf(st *AircraftState, level IncidentLevel, ts time.Time, warning string) Snapshot {
	snap := Snapshot{
		Tick: st.Tick,
		TS:   ts,

		AltitudeFt:       st.AltitudeFt,
		AirspeedKt:       st.AirspeedKt,
		HeadingDeg:       st.HeadingDeg,
		TargetHeadingDeg: st.TargetHeadingDeg,
		PitchDeg:         st.PitchDeg,
		BankDeg:          st.BankDeg,
		ThrottlePct:      st.ThrottlePct,
		Flaps:            st.Flaps,
		GearDown:         st.GearDown,
		DistanceNM:       st.DistanceNM,

		IncidentLevel: level.String(),
		CabinSmoke:    st.CabinSmoke,
		OxygenOn:      st.OxygenOn,
		Mayday:        st.MaydayDeclared,
		FireBottle:    !st.FireBottleUsed,

		Score:   st.Score,
		Outcome: st.Outcome.String(),
		Events:  append([]string(nil), st.EventLog...),
		Warning: warning,
	}
	for _, id := range st.engineIDs {
		e := st.Engines[id]
		snap.Engines = append(snap.Engines, EngineSnapshot{ID: id, Running: e.Running, OnFire: e.OnFire})
	}
	return snap
}
