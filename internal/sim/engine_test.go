package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock hands the test full control over tick delivery. Each send on
// ch is one tick; closing it ends the run.
type manualClock struct {
	ch chan float64
}

func newManualClock() *manualClock           { return &manualClock{ch: make(chan float64)} }
func (m *manualClock) Ticks() <-chan float64 { return m.ch }
func (m *manualClock) Stop()                 {}

func startEngine(t *testing.T, cfg Config, clock TickSource) (*Engine, context.CancelFunc, chan error) {
	t.Helper()
	eng := New(cfg, clock, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()
	return eng, cancel, done
}

func getState(t *testing.T, eng *Engine) Snapshot {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	snap, err := eng.GetState(ctx)
	require.NoError(t, err)
	return snap
}

func TestSyntheticClockYieldsAndCloses(t *testing.T) {
	c := NewSyntheticClock(3, 60)
	for i := 0; i < 3; i++ {
		dt, ok := <-c.Ticks()
		require.True(t, ok)
		assert.Equal(t, 60.0, dt)
	}
	_, ok := <-c.Ticks()
	assert.False(t, ok)
}

func TestEngineAdvancesOnePerTick(t *testing.T) {
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, testConfig(), clock)
	defer cancel()

	assert.Equal(t, 0, getState(t, eng).Tick)

	clock.ch <- 60
	clock.ch <- 60
	snap := getState(t, eng)
	assert.Equal(t, 2, snap.Tick)
	assert.Equal(t, "in progress", snap.Outcome)
}

func TestCommandsApplyBetweenTicks(t *testing.T) {
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, testConfig(), clock)
	defer cancel()

	require.NoError(t, eng.SubmitLine("gear down"))
	require.Eventually(t, func() bool {
		return getState(t, eng).GearDown
	}, 2*time.Second, 10*time.Millisecond)

	// The state already reflects the command before any tick elapses.
	assert.Equal(t, 0, getState(t, eng).Tick)
}

func TestSubmitLineParseErrorMutatesNothing(t *testing.T) {
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, testConfig(), clock)
	defer cancel()

	err := eng.SubmitLine("barrelroll")
	require.ErrorIs(t, err, ErrUnknownCommand)

	clock.ch <- 60
	snap := getState(t, eng)
	assert.NotContains(t, snap.Events, "unknown")
}

func TestTickingStopsAtMaxTicks(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTicks = 3
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, cfg, clock)
	defer cancel()

	for i := 0; i < 6; i++ {
		clock.ch <- 60
	}
	assert.Equal(t, 3, getState(t, eng).Tick)
}

func TestSnapshotIsIsolatedFromSession(t *testing.T) {
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, testConfig(), clock)
	defer cancel()

	require.NoError(t, eng.SubmitLine("gear down"))
	require.Eventually(t, func() bool {
		return len(getState(t, eng).Events) == 1
	}, 2*time.Second, 10*time.Millisecond)

	snap := getState(t, eng)
	snap.Events[0] = "tampered"
	snap.Engines[0].Running = false

	again := getState(t, eng)
	assert.NotEqual(t, "tampered", again.Events[0])
	assert.True(t, again.Engines[0].Running)
}

// Commands still queued when the tick source closes are applied before the
// final snapshot goes out.
func TestQueuedCommandsDrainAtClockExhaustion(t *testing.T) {
	clock := newManualClock()
	eng, cancel, done := startEngine(t, testConfig(), clock)
	defer cancel()

	ctx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()
	ch, unsub := eng.Subscribe(ctx)
	defer unsub()
	<-ch // initial frame proves the subscription is registered

	eng.Submit(GearCommand{Down: true})
	close(clock.ch)

	var last Snapshot
	for snap := range ch {
		last = snap
	}
	assert.True(t, last.GearDown)
	require.NoError(t, <-done)
}

func TestContextCancelClosesSubscribers(t *testing.T) {
	clock := newManualClock()
	eng, cancel, done := startEngine(t, testConfig(), clock)

	ch, unsub := eng.Subscribe(context.Background())
	defer unsub()
	<-ch

	cancel()
	require.NoError(t, <-done)
	_, ok := <-ch
	assert.False(t, ok)
}

// With the trigger forced on and no crew response, the session ends in a
// loss of control from the uncontained engine fire.
func TestUnhandledEmergencyEndsInLossOfControl(t *testing.T) {
	cfg := testConfig()
	cfg.Incident.TriggerChance = 1
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, cfg, clock)
	defer cancel()

	for i := 0; i < 15; i++ {
		clock.ch <- 60
	}
	snap := getState(t, eng)
	assert.Equal(t, "lost control", snap.Outcome)
	assert.LessOrEqual(t, snap.Tick, 10, "failure lands well before the tick budget")
	assert.Equal(t, "cabin smoke", snap.IncidentLevel)
}

// The full recovery script: mayday, secure the engine, bottle the fire,
// oxygen for the cabin, then a stabilized approach to touchdown.
func TestScriptedRecoveryLandsSafely(t *testing.T) {
	cfg := testConfig()
	cfg.Incident.TriggerChance = 1
	clock := newManualClock()
	eng, cancel, _ := startEngine(t, cfg, clock)
	defer cancel()

	script := map[int][]string{
		1: {"declare mayday", "throttle 40", "pitch -10"},
		3: {"shutdown eng2", "fire bottle"},
		5: {"oxygen on"},
	}

	tick := func() {
		clock.ch <- 60
		snap := getState(t, eng)
		for _, line := range script[snap.Tick] {
			require.NoError(t, eng.SubmitLine(line))
		}
		// Wait for the queued lines to land before the next tick.
		require.Eventually(t, func() bool {
			s := getState(t, eng)
			return len(s.Events) >= len(snap.Events)+len(script[snap.Tick])
		}, 2*time.Second, 5*time.Millisecond)
	}

	for i := 0; i < 8; i++ {
		tick()
	}
	snap := getState(t, eng)
	require.Equal(t, "in progress", snap.Outcome, "emergency contained: %v", snap.Events)
	assert.Equal(t, "none", snap.IncidentLevel)
	assert.False(t, snap.CabinSmoke)
}
