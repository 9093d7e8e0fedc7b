package sim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incidentFixture(t *testing.T) (Config, *AircraftState, *IncidentEngine) {
	t.Helper()
	cfg := testConfig()
	cfg.Incident.TriggerChance = 1
	st := newAircraftState(cfg)
	ie := newIncidentEngine(cfg.Incident, cfg.Score, 1)
	return cfg, st, ie
}

func tickIncident(st *AircraftState, ie *IncidentEngine, n int) {
	for i := 0; i < n; i++ {
		st.Tick++
		ie.Update(st, 60)
	}
}

// Absent corrective action the ladder only moves forward, one level per
// timer expiry, never skipping.
func TestEscalationIsMonotonicAndStepwise(t *testing.T) {
	_, st, ie := incidentFixture(t)

	prev := ie.Level()
	require.Equal(t, LevelNone, prev)
	for i := 0; i < 12; i++ {
		st.Tick++
		ie.Update(st, 60)
		cur := ie.Level()
		assert.GreaterOrEqual(t, cur, prev)
		assert.LessOrEqual(t, int(cur-prev), 1, "skipped a level at tick %d", st.Tick)
		prev = cur
		if st.lostControl {
			break
		}
	}
	assert.Equal(t, LevelCabinSmoke, prev)
}

func TestEscalationTimeline(t *testing.T) {
	_, st, ie := incidentFixture(t)

	tickIncident(st, ie, 1)
	assert.Equal(t, LevelEngineSmoke, ie.Level())

	tickIncident(st, ie, 2)
	assert.Equal(t, LevelEngineFire, ie.Level())
	assert.True(t, st.Engines["eng2"].OnFire)

	tickIncident(st, ie, 2)
	assert.Equal(t, LevelCabinSmoke, ie.Level())
	assert.True(t, st.CabinSmoke)
}

// A fire left burning on a running engine becomes an uncontained failure.
func TestProlongedFireForcesLossOfControl(t *testing.T) {
	cfg, st, ie := incidentFixture(t)

	tickIncident(st, ie, 12)
	require.True(t, st.lostControl)

	ev := newLandingEvaluator(cfg.Landing, cfg.Score)
	ev.Evaluate(st)
	assert.Equal(t, OutcomeLostControl, st.Outcome)
}

func TestShutdownAtSmokeLevelPreventsFire(t *testing.T) {
	cfg, st, ie := incidentFixture(t)

	tickIncident(st, ie, 1)
	require.Equal(t, LevelEngineSmoke, ie.Level())

	st.Engines["eng2"].Running = false
	tickIncident(st, ie, cfg.Incident.SmokeClearTicks)
	assert.Equal(t, LevelNone, ie.Level())
	assert.False(t, st.Engines["eng2"].OnFire)
}

func TestBottleAfterShutdownClearsFire(t *testing.T) {
	cfg, st, ie := incidentFixture(t)

	tickIncident(st, ie, 3)
	require.Equal(t, LevelEngineFire, ie.Level())
	require.True(t, st.Engines["eng2"].OnFire)

	st.Engines["eng2"].Running = false
	require.True(t, ie.Extinguish(st, "eng2"))
	assert.False(t, st.Engines["eng2"].OnFire)
	assert.Equal(t, LevelEngineSmoke, ie.Level(), "bottle de-escalates exactly one level")

	// With fuel cut and the fire out, the residual smoke dissipates.
	tickIncident(st, ie, cfg.Incident.SmokeClearTicks)
	assert.Equal(t, LevelNone, ie.Level())
}

func TestBottleOnRunningEngineDoesNothing(t *testing.T) {
	_, st, ie := incidentFixture(t)

	tickIncident(st, ie, 3)
	require.True(t, st.Engines["eng2"].OnFire)
	require.True(t, st.Engines["eng2"].Running)

	assert.False(t, ie.Extinguish(st, "eng2"))
	assert.True(t, st.Engines["eng2"].OnFire)
	assert.Equal(t, LevelEngineFire, ie.Level())
}

// Unresolved cabin smoke past its threshold without oxygen is fatal no
// matter what the rest of the state looks like.
func TestUnmitigatedCabinSmokeForcesLossOfControl(t *testing.T) {
	cfg, st, ie := incidentFixture(t)

	// Secure the engine so the fire cannot end the flight first.
	tickIncident(st, ie, 5)
	require.Equal(t, LevelCabinSmoke, ie.Level())
	st.Engines["eng2"].Running = false
	require.True(t, ie.Extinguish(st, "eng2"))
	require.Equal(t, LevelCabinSmoke, ie.Level(), "bottling does not clear cabin smoke")

	st.OxygenOn = false
	tickIncident(st, ie, cfg.Incident.CabinSmokeFatalTicks)
	assert.True(t, st.lostControl)
}

func TestOxygenMitigatesAndClearsCabinSmoke(t *testing.T) {
	cfg, st, ie := incidentFixture(t)

	tickIncident(st, ie, 5)
	require.Equal(t, LevelCabinSmoke, ie.Level())
	st.Engines["eng2"].Running = false
	require.True(t, ie.Extinguish(st, "eng2"))

	st.OxygenOn = true
	tickIncident(st, ie, cfg.Incident.OxygenRecoveryTicks)
	assert.False(t, st.CabinSmoke)
	assert.False(t, st.lostControl)
	assert.Equal(t, LevelNone, ie.Level())
}

func TestGearOverspeedPenalty(t *testing.T) {
	cfg, st, ie := incidentFixture(t)
	ie.cfg.TriggerChance = 0

	st.GearDown = true
	st.AirspeedKt = cfg.Incident.GearLimitKt + 30
	before := st.Score
	tickIncident(st, ie, 3)
	assert.Equal(t, before+3*cfg.Score.GearOverspeed, st.Score)

	// The log entry fires once per episode, not per tick.
	n := 0
	for _, e := range st.EventLog {
		if strings.Contains(e, "gear overspeed") {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestLowAndSlowWarning(t *testing.T) {
	cfg, st, ie := incidentFixture(t)
	ie.cfg.TriggerChance = 0

	st.AltitudeFt = 500
	st.AirspeedKt = 120
	before := st.Score
	tickIncident(st, ie, 2)
	assert.Equal(t, before+2*cfg.Score.LowAndSlowTick, st.Score)
}

func TestNoTriggerWhenDisabled(t *testing.T) {
	cfg := testConfig() // TriggerChance zero
	st := newAircraftState(cfg)
	ie := newIncidentEngine(cfg.Incident, cfg.Score, 1)

	tickIncident(st, ie, 30)
	assert.Equal(t, LevelNone, ie.Level())
	assert.Empty(t, st.EventLog)
}
