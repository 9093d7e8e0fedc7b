package sim

import (
	"context"
	"log/slog"
	"time"

	"mayday-sim/pkg/log"
)

type stateReq struct {
	reply chan Snapshot
}

type subscribeReq struct {
	ch chan Snapshot
}

// Engine runs one session as an actor: a single goroutine owns the
// AircraftState and the incident machine, commands are applied strictly
// between ticks, and everyone else communicates over channels.
type Engine struct {
	cfg    Config
	clock  TickSource
	logger *log.Logger

	cmdCh       chan Command
	stateReqCh  chan stateReq
	subscribeCh chan subscribeReq
	unsubCh     chan chan Snapshot
}

func New(cfg Config, clock TickSource, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewDiscard()
	}
	return &Engine{
		cfg:         cfg,
		clock:       clock,
		logger:      logger,
		cmdCh:       make(chan Command, 128),
		stateReqCh:  make(chan stateReq, 32),
		subscribeCh: make(chan subscribeReq, 32),
		unsubCh:     make(chan chan Snapshot, 32),
	}
}

// Submit queues a command for the gap before the next tick. Drops when the
// queue is full rather than blocking the caller.
func (e *Engine) Submit(cmd Command) {
	select {
	case e.cmdCh <- cmd:
	default:
		e.logger.Warn("command dropped, queue full", slog.String("type", string(cmd.Type())))
	}
}

// SubmitLine parses one line of the command grammar and submits it. A parse
// error is returned to the caller and mutates nothing.
func (e *Engine) SubmitLine(line string) error {
	cmd, err := Parse(line)
	if err != nil {
		return err
	}
	e.Submit(cmd)
	return nil
}

// GetState returns a read-only snapshot of the session.
func (e *Engine) GetState(ctx context.Context) (Snapshot, error) {
	req := stateReq{reply: make(chan Snapshot, 1)}
	select {
	case e.stateReqCh <- req:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}

	select {
	case snap := <-req.reply:
		return snap, nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Subscribe returns a channel of snapshots published after every tick and
// every applied command, plus an unsubscribe func. Slow subscribers drop
// frames instead of stalling the session.
func (e *Engine) Subscribe(ctx context.Context) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 32)

	select {
	case e.subscribeCh <- subscribeReq{ch: ch}:
	case <-ctx.Done():
		close(ch)
		return ch, func() {}
	}

	unsub := func() {
		select {
		case e.unsubCh <- ch:
		default:
		}
	}
	return ch, unsub
}

// Run owns the session from initial cruise state to the terminal outcome.
// It returns when the context is cancelled or the tick source is exhausted.
func (e *Engine) Run(ctx context.Context) error {
	st := newAircraftState(e.cfg)
	incidents := newIncidentEngine(e.cfg.Incident, e.cfg.Score, e.cfg.Seed)
	integrator := newDynamicsIntegrator(e.cfg.Physics, e.cfg.Landing.RunwayHeadingDeg, e.cfg.Environment)
	resolver := newActionResolver(e.cfg, incidents)
	evaluator := newLandingEvaluator(e.cfg.Landing, e.cfg.Score)

	subs := map[chan Snapshot]struct{}{}
	loggedEvents := 0

	snapshot := func(warning string) Snapshot {
		return snapshotOf(st, incidents.Level(), time.Now(), warning)
	}

	publish := func(snap Snapshot) {
		for ch := range subs {
			select {
			case ch <- snap:
			default:
				// slow subscriber -> drop frame
			}
		}
	}

	// Session events go to the structured log as they appear.
	flushEvents := func() {
		for ; loggedEvents < len(st.EventLog); loggedEvents++ {
			e.logger.Info("event",
				slog.Int("tick", st.Tick),
				slog.String("msg", st.EventLog[loggedEvents]))
		}
	}

	for {
		select {
		case <-ctx.Done():
			for ch := range subs {
				close(ch)
			}
			return nil

		case req := <-e.subscribeCh:
			subs[req.ch] = struct{}{}
			req.ch <- snapshot("")

		case ch := <-e.unsubCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case req := <-e.stateReqCh:
			req.reply <- snapshot("")

		case cmd := <-e.cmdCh:
			resolver.Apply(cmd, st)
			flushEvents()
			publish(snapshot(""))

		case dt, ok := <-e.clock.Ticks():
			if !ok {
				// Apply anything still queued so no command is lost at
				// shutdown, then hand the final snapshot out.
			drain:
				for {
					select {
					case cmd := <-e.cmdCh:
						resolver.Apply(cmd, st)
						flushEvents()
					default:
						break drain
					}
				}
				publish(snapshot(""))
				for ch := range subs {
					close(ch)
				}
				return nil
			}
			if st.Terminal() || st.Tick >= e.cfg.MaxTicks {
				continue
			}

			st.Tick++
			warning := integrator.Advance(st, dt)
			if warning != "" {
				st.logf("%s", warning)
			}
			incidents.Update(st, dt)
			evaluator.Evaluate(st)
			flushEvents()

			if st.Terminal() {
				e.logger.Info("session over",
					slog.Int("tick", st.Tick),
					slog.String("outcome", st.Outcome.String()),
					slog.Int("score", st.Score))
			}
			publish(snapshot(warning))
		}
	}
}
