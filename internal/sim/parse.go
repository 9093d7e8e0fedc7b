package sim

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrUnknownCommand marks a verb outside the grammar.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrBadArgument marks a recognized verb with malformed arguments.
	ErrBadArgument = errors.New("bad argument")
)

// Parse turns one input line of the command grammar into a Command. Malformed
// input returns a wrapped ErrUnknownCommand or ErrBadArgument and never
// mutates anything; out-of-range numeric values are accepted here and clamped
// by the resolver.
//
// Grammar:
//
//	throttle <int>        pitch <±int>          turn <L|R> <deg>
//	flaps <0-3>           gear <up|down>        declare mayday
//	shutdown <engine>     fire bottle [engine]  oxygen <on|off>
//	tick | status | help | quit
func Parse(line string) (Command, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	now := time.Now()

	switch parts[0] {
	case "throttle":
		pct, err := oneInt(parts)
		if err != nil {
			return nil, err
		}
		return ThrottleCommand{At: now, Percent: float64(pct)}, nil

	case "pitch":
		deg, err := oneInt(parts)
		if err != nil {
			return nil, err
		}
		return PitchCommand{At: now, Degrees: float64(deg)}, nil

	case "turn":
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: turn <L|R> <degrees>", ErrBadArgument)
		}
		deg, err := strconv.Atoi(parts[2])
		if err != nil || deg < 0 {
			return nil, fmt.Errorf("%w: turn degrees %q", ErrBadArgument, parts[2])
		}
		switch parts[1] {
		case "l", "left":
			return TurnCommand{At: now, Direction: TurnLeft, Degrees: float64(deg)}, nil
		case "r", "right":
			return TurnCommand{At: now, Direction: TurnRight, Degrees: float64(deg)}, nil
		}
		return nil, fmt.Errorf("%w: turn side %q", ErrBadArgument, parts[1])

	case "flaps":
		setting, err := oneInt(parts)
		if err != nil {
			return nil, err
		}
		return FlapsCommand{At: now, Setting: setting}, nil

	case "gear":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: gear <up|down>", ErrBadArgument)
		}
		switch parts[1] {
		case "down":
			return GearCommand{At: now, Down: true}, nil
		case "up":
			return GearCommand{At: now, Down: false}, nil
		}
		return nil, fmt.Errorf("%w: gear %q", ErrBadArgument, parts[1])

	case "declare":
		if len(parts) == 2 && parts[1] == "mayday" {
			return MaydayCommand{At: now}, nil
		}
		return nil, fmt.Errorf("%w: declare mayday", ErrBadArgument)

	case "mayday":
		if len(parts) == 1 {
			return MaydayCommand{At: now}, nil
		}
		return nil, fmt.Errorf("%w: mayday takes no arguments", ErrBadArgument)

	case "shutdown":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: shutdown <engine>", ErrBadArgument)
		}
		return ShutdownCommand{At: now, Engine: parts[1]}, nil

	case "fire":
		if len(parts) == 2 && parts[1] == "bottle" {
			return FireBottleCommand{At: now}, nil
		}
		if len(parts) == 3 && parts[1] == "bottle" {
			return FireBottleCommand{At: now, Engine: parts[2]}, nil
		}
		return nil, fmt.Errorf("%w: fire bottle [engine]", ErrBadArgument)

	case "oxygen":
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: oxygen <on|off>", ErrBadArgument)
		}
		switch parts[1] {
		case "on":
			return OxygenCommand{At: now, On: true}, nil
		case "off":
			return OxygenCommand{At: now, On: false}, nil
		}
		return nil, fmt.Errorf("%w: oxygen %q", ErrBadArgument, parts[1])

	case "tick", "hold":
		return HoldCommand{At: now}, nil
	case "status":
		return StatusCommand{At: now}, nil
	case "help":
		return HelpCommand{At: now}, nil
	case "quit", "exit":
		return QuitCommand{At: now}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
}

func oneInt(parts []string) (int, error) {
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %s takes one number", ErrBadArgument, parts[0])
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrBadArgument, parts[0], parts[1])
	}
	return v, nil
}
