package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mayday-sim/internal/api"
	"mayday-sim/internal/env"
	"mayday-sim/internal/hud"
	"mayday-sim/internal/sim"
	"mayday-sim/pkg/log"
)

var (
	addr        = flag.String("addr", getEnv("MAYDAYSIM_ADDR", ":8080"), "HTTP listen address")
	headless    = flag.Bool("headless", false, "serve the HTTP API without the terminal HUD")
	demo        = flag.Bool("demo", false, "run a scripted headless session and print snapshots")
	demoSeconds = flag.Int("demo-seconds", 40, "number of ticks for the demo run")
	tickMS      = flag.Int("tick-ms", 1000, "real-time tick interval in milliseconds")
	dtSec       = flag.Float64("dt", 60, "simulated seconds per tick")
	seed        = flag.Int64("seed", 0, "incident random seed (0 = from clock)")
	loglevel    = flag.String("loglevel", "info", "log level (debug, info, warn, error)")
	logdir      = flag.String("logdir", getEnv("MAYDAYSIM_LOGDIR", ""), "log directory")
	windKt      = flag.Float64("wind-kt", 0, "steady wind speed in knots")
	windFrom    = flag.Float64("wind-from", 270, "direction the wind blows from, degrees")
)

func main() {
	flag.Parse()

	cfg := sim.DefaultConfig()
	cfg.Seed = *seed
	if *windKt > 0 {
		cfg.Environment = &env.Chain{Effects: []env.Environment{
			env.Wind{SpeedKt: *windKt, FromDeg: *windFrom},
			env.Turbulence{AmplitudeFt: 4, R: rand.New(rand.NewSource(*seed + 1))},
		}}
	}

	if *demo {
		runDemo(cfg)
		return
	}

	var logger *log.Logger
	if *headless {
		logger = log.NewStderr(*loglevel)
	} else {
		// The HUD owns the terminal, so logs go to file only.
		logger = log.New(*loglevel, *logdir)
	}

	clock := sim.NewRealTimeClock(time.Duration(*tickMS)*time.Millisecond, *dtSec)
	defer clock.Stop()
	engine := sim.New(cfg, clock, logger)
	server := api.NewServer(engine, logger)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: server.Handler(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := engine.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("simulation error", "err", err)
		}
	}()

	go func() {
		logger.Info("HTTP server listening", "addr", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "err", err)
			cancel()
		}
	}()

	if *headless {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
	} else {
		ui, err := hud.New(engine, cfg.Landing.RunwayHeadingDeg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot start HUD: %v (use -headless?)\n", err)
			os.Exit(1)
		}
		if err := ui.Run(ctx); err != nil {
			logger.Error("HUD error", "err", err)
		}
	}

	logger.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
	cancel()
}

// demoScript is the canned crew response the demo mode plays against the
// scripted emergency: declare early, manage energy down, secure the burning
// engine, bottle it, go on oxygen, and configure for the approach.
var demoScript = map[int][]string{
	1:  {"declare mayday"},
	2:  {"pitch -8", "throttle 45"},
	4:  {"shutdown eng2"},
	5:  {"fire bottle"},
	6:  {"oxygen on"},
	14: {"throttle 52", "pitch -4"},
	18: {"flaps 2", "throttle 48"},
	20: {"gear down", "flaps 3", "pitch -3"},
}

// runDemo drives a stepped-clock session: one tick at a time, with the
// scripted crew commands guaranteed to apply before the next tick. It prints
// one snapshot line per tick plus every new event, then the final report.
func runDemo(cfg sim.Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	cfg.Incident.TriggerChance = 1 // always show the emergency in demo mode

	clock := sim.NewSteppedClock(*dtSec)
	engine := sim.New(cfg, clock, log.NewStderr("warn"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snaps, unsub := engine.Subscribe(ctx)
	defer unsub()

	go func() {
		_ = engine.Run(ctx)
	}()

	printed := 0
	// read consumes one published frame and prints its new events. The engine
	// publishes exactly one frame per tick and one per applied command, which
	// keeps the driver in lockstep without sleeping.
	read := func() sim.Snapshot {
		snap := <-snaps
		for _, line := range snap.Events[printed:] {
			fmt.Println("  " + line)
		}
		printed = len(snap.Events)
		return snap
	}

	last := read() // initial frame from the subscription
	for i := 0; i < *demoSeconds && last.Tick < cfg.MaxTicks; i++ {
		clock.Step()
		last = read()
		gear := "UP"
		if last.GearDown {
			gear = "DOWN"
		}
		fmt.Printf("T+%02d DIST %05.1fnm ALT %05.0fft SPD %03.0fkt HDG %03.0f THR %03.0f%% FLAPS %d GEAR %s SCORE %d\n",
			last.Tick, last.DistanceNM, last.AltitudeFt, last.AirspeedKt, last.HeadingDeg,
			last.ThrottlePct, last.Flaps, gear, last.Score)
		if last.Outcome != "in progress" {
			break
		}
		for _, line := range demoScript[last.Tick] {
			if err := engine.SubmitLine(line); err != nil {
				fmt.Fprintf(os.Stderr, "demo script: %v\n", err)
				continue
			}
			last = read()
		}
	}

	fmt.Println("\nFINAL REPORT")
	fmt.Printf("  ticks elapsed: %d\n", last.Tick)
	fmt.Printf("  distance to field: %.1f nm\n", last.DistanceNM)
	fmt.Printf("  altitude: %.0f ft, airspeed: %.0f kt\n", last.AltitudeFt, last.AirspeedKt)
	fmt.Printf("  score: %d\n", last.Score)
	outcome := last.Outcome
	if outcome == "in progress" {
		outcome = "time expired, still airborne"
	}
	fmt.Printf("  outcome: %s\n", outcome)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
