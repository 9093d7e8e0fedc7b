package sim

import "time"

type CommandType string

const (
	CmdThrottle   CommandType = "throttle"
	CmdPitch      CommandType = "pitch"
	CmdTurn       CommandType = "turn"
	CmdFlaps      CommandType = "flaps"
	CmdGear       CommandType = "gear"
	CmdMayday     CommandType = "mayday"
	CmdShutdown   CommandType = "shutdown"
	CmdFireBottle CommandType = "firebottle"
	CmdOxygen     CommandType = "oxygen"
	CmdHold       CommandType = "hold"

	// Presentation directives. The core treats them as no-ops; the HUD and
	// API intercept them before submission.
	CmdStatus CommandType = "status"
	CmdHelp   CommandType = "help"
	CmdQuit   CommandType = "quit"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

type ThrottleCommand struct {
	At      time.Time
	Percent float64
}

func (c ThrottleCommand) Type() CommandType     { return CmdThrottle }
func (c ThrottleCommand) ReceivedAt() time.Time { return c.At }

type PitchCommand struct {
	At      time.Time
	Degrees float64
}

func (c PitchCommand) Type() CommandType     { return CmdPitch }
func (c PitchCommand) ReceivedAt() time.Time { return c.At }

// TurnDirection selects the turn side for a TurnCommand.
type TurnDirection int

const (
	TurnLeft TurnDirection = iota
	TurnRight
)

type TurnCommand struct {
	At        time.Time
	Direction TurnDirection
	Degrees   float64
}

func (c TurnCommand) Type() CommandType     { return CmdTurn }
func (c TurnCommand) ReceivedAt() time.Time { return c.At }

type FlapsCommand struct {
	At      time.Time
	Setting int
}

func (c FlapsCommand) Type() CommandType     { return CmdFlaps }
func (c FlapsCommand) ReceivedAt() time.Time { return c.At }

type GearCommand struct {
	At   time.Time
	Down bool
}

func (c GearCommand) Type() CommandType     { return CmdGear }
func (c GearCommand) ReceivedAt() time.Time { return c.At }

type MaydayCommand struct{ At time.Time }

func (c MaydayCommand) Type() CommandType     { return CmdMayday }
func (c MaydayCommand) ReceivedAt() time.Time { return c.At }

type ShutdownCommand struct {
	At     time.Time
	Engine string
}

func (c ShutdownCommand) Type() CommandType     { return CmdShutdown }
func (c ShutdownCommand) ReceivedAt() time.Time { return c.At }

// FireBottleCommand discharges the extinguisher. An empty Engine targets
// whichever engine is on fire.
type FireBottleCommand struct {
	At     time.Time
	Engine string
}

func (c FireBottleCommand) Type() CommandType     { return CmdFireBottle }
func (c FireBottleCommand) ReceivedAt() time.Time { return c.At }

type OxygenCommand struct {
	At time.Time
	On bool
}

func (c OxygenCommand) Type() CommandType     { return CmdOxygen }
func (c OxygenCommand) ReceivedAt() time.Time { return c.At }

// HoldCommand keeps the current controls for the next tick.
type HoldCommand struct{ At time.Time }

func (c HoldCommand) Type() CommandType     { return CmdHold }
func (c HoldCommand) ReceivedAt() time.Time { return c.At }

type StatusCommand struct{ At time.Time }

func (c StatusCommand) Type() CommandType     { return CmdStatus }
func (c StatusCommand) ReceivedAt() time.Time { return c.At }

type HelpCommand struct{ At time.Time }

func (c HelpCommand) Type() CommandType     { return CmdHelp }
func (c HelpCommand) ReceivedAt() time.Time { return c.At }

type QuitCommand struct{ At time.Time }

func (c QuitCommand) Type() CommandType     { return CmdQuit }
func (c QuitCommand) ReceivedAt() time.Time { return c.At }
