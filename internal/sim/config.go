package sim

import "mayday-sim/internal/env"

// Config carries every tuning constant for one session. All timers are in
// ticks, all rates in per-simulated-second units, so the same config works
// for a 1 s and a 60 s tick.
type Config struct {
	// MaxTicks ends the session (still in progress) after this many ticks.
	MaxTicks int
	// Seed for the incident random source. Zero means seed from the clock.
	Seed int64

	// EngineIDs fixes the engine set for the session, in display order.
	EngineIDs []string

	// Initial cruise state.
	InitialAltitudeFt float64
	InitialAirspeedKt float64
	InitialHeadingDeg float64
	InitialThrottle   float64
	InitialDistanceNM float64

	Physics  PhysicsConfig
	Incident IncidentConfig
	Landing  LandingConfig
	Score    ScoreConfig

	// Environment is the per-tick effect chain (wind, turbulence). Nil
	// means no environmental effects.
	Environment env.Environment
}

// PhysicsConfig tunes the dynamics integrator.
type PhysicsConfig struct {
	MaxLevelSpeedKt float64 // target speed at full throttle, all engines
	MaxSpeedKt      float64 // absolute airspeed clamp
	MaxAltitudeFt   float64

	AccelKtPerSec float64 // bounded rate airspeed moves toward target
	DecelKtPerSec float64

	FlapsDragKt      float64 // target-speed penalty per flaps step
	GearDragKt       float64 // target-speed penalty with gear down
	PitchTradeKt     float64 // target-speed penalty per degree of climb
	CleanStallKt     float64 // stall threshold with flaps up
	FlapsStallRelief float64 // stall threshold reduction per flaps step

	MaxPitchDeg float64
	MinPitchDeg float64
	MaxBankDeg  float64

	RollRateDegPerSec  float64 // bank moves toward commanded bank at this rate
	BankPerHeadingErr  float64 // commanded bank per degree of heading error
	TurnRatePerBankDeg float64 // heading rate (deg/s) per degree of bank

	ClimbFpmPerPitchDeg  float64 // climb rate per degree at climb reference speed
	ClimbReferenceKt     float64
	ThrottleClimbFpmPct  float64 // climb contribution per throttle percent above cruise
	CruiseThrottlePct    float64
	BaseSinkFpm          float64 // trim sink with neutral pitch and cruise power
	StallSinkFpm         float64 // sink when pitched up below stall speed
	StallPitchPenaltyFpm float64 // extra stall sink per degree of pitch
	NoAirspeedSinkFpm    float64 // sink with zero airspeed, any pitch
	EngineOutSinkFpm     float64 // extra sink per lost engine
	FlapsSinkFpm         float64 // extra sink with landing flaps
	GearSinkFpm          float64 // extra sink with gear down
}

// IncidentConfig tunes the escalation ladder.
type IncidentConfig struct {
	// AffectedEngine is the engine the scripted emergency attacks.
	AffectedEngine string
	// EarliestTriggerTick is the first tick the onset roll happens.
	EarliestTriggerTick int
	// TriggerChance is the per-tick probability of the onset once eligible.
	// Set to 1 for deterministic tests, 0 to disable the emergency.
	TriggerChance float64

	SmokeToFireTicks int // unhandled engine smoke escalates to fire
	FireToCabinTicks int // unhandled fire escalates to cabin smoke
	SmokeClearTicks  int // engine-off smoke dissipates back to none
	FireCriticalT    int // fire ticks on a running engine before uncontained failure

	CabinSmokeFatalTicks int // unmitigated cabin smoke before loss of control
	OxygenRecoveryTicks  int // mitigated ticks before cabin smoke clears

	GearLimitKt    float64 // gear overspeed threshold
	StallWarnKt    float64 // low-and-slow warning speed
	StallWarnAltFt float64 // low-and-slow warning altitude
	SmokeWarnAltFt float64 // heavy-smoke-at-altitude warning floor
}

// LandingConfig is the touchdown envelope.
type LandingConfig struct {
	RunwayHeadingDeg float64
	ApproachRefKt    float64 // reference approach speed
	ApproachBandKt   float64 // tolerance around the reference
	HeadingTolDeg    float64
	MinLandingFlaps  int
	RunwayCaptureNM  float64 // touchdown counts as on-field inside this range
}

// ScoreConfig holds the score delta for every scored event.
type ScoreConfig struct {
	IncidentOnset    int
	FireBurnTick     int
	CabinSmokeTick   int
	GearOverspeed    int
	LowAndSlowTick   int
	Mayday           int
	LateMayday       int
	ShutdownAffected int
	ShutdownHealthy  int
	FireBottle       int
	Oxygen           int
	Ineffective      int
	SafeLanding      int
	CrashLanding     int
}

// DefaultConfig returns the session tuning used by the shipping game. The
// numbers reproduce the classic scenario: cruise at FL320 with 110 nm to run,
// smoke on engine 2 shortly after start, fire two ticks later, cabin smoke
// two ticks after that.
func DefaultConfig() Config {
	return Config{
		MaxTicks:  40,
		EngineIDs: []string{"eng1", "eng2"},

		InitialAltitudeFt: 32000,
		InitialAirspeedKt: 290,
		InitialHeadingDeg: 270,
		InitialThrottle:   68,
		InitialDistanceNM: 110,

		Physics: PhysicsConfig{
			MaxLevelSpeedKt: 420,
			MaxSpeedKt:      420,
			MaxAltitudeFt:   41000,

			AccelKtPerSec: 0.5,
			DecelKtPerSec: 0.8,

			FlapsDragKt:      15,
			GearDragKt:       30,
			PitchTradeKt:     4,
			CleanStallKt:     135,
			FlapsStallRelief: 10,

			MaxPitchDeg: 20,
			MinPitchDeg: -15,
			MaxBankDeg:  45,

			RollRateDegPerSec:  5,
			BankPerHeadingErr:  2,
			TurnRatePerBankDeg: 0.067,

			ClimbFpmPerPitchDeg:  150,
			ClimbReferenceKt:     290,
			ThrottleClimbFpmPct:  8,
			CruiseThrottlePct:    55,
			BaseSinkFpm:          150,
			StallSinkFpm:         1200,
			StallPitchPenaltyFpm: 60,
			NoAirspeedSinkFpm:    2500,
			EngineOutSinkFpm:     500,
			FlapsSinkFpm:         200,
			GearSinkFpm:          250,
		},

		Incident: IncidentConfig{
			AffectedEngine:      "eng2",
			EarliestTriggerTick: 1,
			TriggerChance:       0.6,

			SmokeToFireTicks: 2,
			FireToCabinTicks: 2,
			SmokeClearTicks:  2,
			FireCriticalT:    6,

			CabinSmokeFatalTicks: 6,
			OxygenRecoveryTicks:  3,

			GearLimitKt:    220,
			StallWarnKt:    135,
			StallWarnAltFt: 1000,
			SmokeWarnAltFt: 12000,
		},

		Landing: LandingConfig{
			RunwayHeadingDeg: 270,
			ApproachRefKt:    140,
			ApproachBandKt:   10,
			HeadingTolDeg:    10,
			MinLandingFlaps:  2,
			RunwayCaptureNM:  1.0,
		},

		Score: ScoreConfig{
			IncidentOnset:    -2,
			FireBurnTick:     -4,
			CabinSmokeTick:   -3,
			GearOverspeed:    -8,
			LowAndSlowTick:   -10,
			Mayday:           8,
			LateMayday:       3,
			ShutdownAffected: 6,
			ShutdownHealthy:  -6,
			FireBottle:       12,
			Oxygen:           5,
			Ineffective:      -2,
			SafeLanding:      25,
			CrashLanding:     -25,
		},

		Environment: env.NoOp,
	}
}

// stallSpeed returns the stall threshold for a flaps setting.
func (p PhysicsConfig) stallSpeed(flaps int) float64 {
	return p.CleanStallKt - float64(flaps)*p.FlapsStallRelief
}
