package sim

import "time"

// TickSource yields the dt (simulated seconds) of each tick. The engine is
// agnostic to whether ticks come from the wall clock or a synthetic sequence;
// a closed channel ends the run.
type TickSource interface {
	Ticks() <-chan float64
	Stop()
}

// RealTimeClock emits a fixed simulated dt on every wall-clock interval.
type RealTimeClock struct {
	ch   chan float64
	done chan struct{}
}

func NewRealTimeClock(interval time.Duration, dt float64) *RealTimeClock {
	c := &RealTimeClock{
		ch:   make(chan float64),
		done: make(chan struct{}),
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case c.ch <- dt:
				case <-c.done:
					return
				}
			case <-c.done:
				return
			}
		}
	}()
	return c
}

func (c *RealTimeClock) Ticks() <-chan float64 { return c.ch }

// Stop halts the clock. Safe to call once.
func (c *RealTimeClock) Stop() { close(c.done) }

// SyntheticClock yields a fixed count of identical dt values and then closes,
// for headless and demo runs. Update order is identical to real time.
type SyntheticClock struct {
	ch chan float64
}

func NewSyntheticClock(n int, dt float64) *SyntheticClock {
	c := &SyntheticClock{ch: make(chan float64, n)}
	for i := 0; i < n; i++ {
		c.ch <- dt
	}
	close(c.ch)
	return c
}

func (c *SyntheticClock) Ticks() <-chan float64 { return c.ch }
func (c *SyntheticClock) Stop()                 {}

// SteppedClock emits a tick only when Step is called. Drivers that interleave
// commands with ticks use it to guarantee commands apply between specific
// ticks; a pre-filled SyntheticClock gives the engine no such gap.
type SteppedClock struct {
	ch chan float64
	dt float64
}

func NewSteppedClock(dt float64) *SteppedClock {
	return &SteppedClock{ch: make(chan float64), dt: dt}
}

func (c *SteppedClock) Ticks() <-chan float64 { return c.ch }

// Step delivers one tick and returns once the engine has accepted it.
func (c *SteppedClock) Step() { c.ch <- c.dt }

// Stop ends the run. Step must not be called after Stop.
func (c *SteppedClock) Stop() { close(c.ch) }
