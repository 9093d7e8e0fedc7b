// Package hud renders the session in a terminal and feeds typed commands to
// the engine. It consumes read-only snapshots and never mutates core state.
package hud

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"mayday-sim/internal/geometry/compass"
	"mayday-sim/internal/sim"
)

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleHeader  = styleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleWarning = styleDefault.Foreground(tcell.ColorYellow)
	styleAlarm   = styleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
	styleScore   = styleDefault.Foreground(tcell.ColorLime)
	styleLog     = styleDefault.Foreground(tcell.ColorGray)
	styleInput   = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCue     = styleDefault.Foreground(tcell.ColorPlum)
)

const logLines = 8

// UI is the interactive terminal front end.
type UI struct {
	screen  tcell.Screen
	eng     *sim.Engine
	runway  float64
	input   string
	history []string
	histIdx int
	notice  string
	help    bool
	latest  sim.Snapshot
}

func New(eng *sim.Engine, runwayHeadingDeg float64) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.SetStyle(styleDefault)
	return &UI{screen: screen, eng: eng, runway: runwayHeadingDeg, histIdx: -1}, nil
}

// Run drives the HUD until the player quits or the context ends.
func (u *UI) Run(ctx context.Context) error {
	defer u.screen.Fini()

	snaps, unsub := u.eng.Subscribe(ctx)
	defer unsub()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	u.render()
	for {
		select {
		case <-ctx.Done():
			return nil

		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			u.latest = snap
			u.render()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch tev := ev.(type) {
			case *tcell.EventResize:
				u.screen.Sync()
				u.render()
			case *tcell.EventKey:
				if quit := u.handleKey(tev); quit {
					return nil
				}
				u.render()
			}
		}
	}
}

// handleKey reports true when the player quits.
func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyEnter:
		return u.submit()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.input) > 0 {
			u.input = u.input[:len(u.input)-1]
		}
	case tcell.KeyUp:
		if len(u.history) > 0 && u.histIdx < len(u.history)-1 {
			u.histIdx++
			u.input = u.history[len(u.history)-1-u.histIdx]
		}
	case tcell.KeyDown:
		if u.histIdx > 0 {
			u.histIdx--
			u.input = u.history[len(u.history)-1-u.histIdx]
		} else {
			u.histIdx = -1
			u.input = ""
		}
	case tcell.KeyRune:
		u.input += string(ev.Rune())
	}
	return false
}

func (u *UI) submit() bool {
	line := strings.TrimSpace(u.input)
	u.input = ""
	u.histIdx = -1
	u.notice = ""
	if line == "" {
		return false
	}
	u.history = append(u.history, line)

	cmd, err := sim.Parse(line)
	if err != nil {
		u.notice = err.Error()
		return false
	}
	switch cmd.Type() {
	case sim.CmdQuit:
		return true
	case sim.CmdHelp:
		u.help = !u.help
		return false
	case sim.CmdStatus:
		// The HUD is the status display.
		return false
	}
	u.eng.Submit(cmd)
	return false
}

func (u *UI) render() {
	s := u.screen
	snap := u.latest
	s.Clear()

	drawText(s, 0, 0, "MAYDAY SIM - EMERGENCY MODE  (help for commands, quit to exit)", styleHeader)

	drawText(s, 0, 2, fmt.Sprintf("T+%02dm | DIST %05.1fnm | ALT %05.0fft | SPD %03.0fkt | HDG %03.0f",
		snap.Tick, snap.DistanceNM, snap.AltitudeFt, snap.AirspeedKt, snap.HeadingDeg), styleDefault)
	gear := "UP"
	if snap.GearDown {
		gear = "DOWN"
	}
	drawText(s, 0, 3, fmt.Sprintf("THR %03.0f%% | PITCH %+03.0f | BANK %+03.0f | FLAPS %d | GEAR %s",
		snap.ThrottlePct, snap.PitchDeg, snap.BankDeg, snap.Flaps, gear), styleDefault)

	x := 0
	for _, e := range snap.Engines {
		label := fmt.Sprintf("%s %s", strings.ToUpper(e.ID), onOff(e.Running))
		style := styleDefault
		if e.OnFire {
			label += " FIRE"
			style = styleAlarm
		}
		drawText(s, x, 4, label, style)
		x += len(label) + 3
	}
	drawText(s, x, 4, "SMOKE "+onOff(snap.CabinSmoke), smokeStyle(snap.CabinSmoke))

	drawText(s, 0, 5, fmt.Sprintf("runway %03.0f | incident: %s | mayday %s | oxygen %s | bottle %s",
		u.runway, snap.IncidentLevel, onOff(snap.Mayday), onOff(snap.OxygenOn), onOff(snap.FireBottle)), styleDefault)
	drawText(s, 0, 6, fmt.Sprintf("score %d | outcome: %s", snap.Score, snap.Outcome), styleScore)

	u.drawRunwayCue(7, snap)

	// Event log tail.
	start := len(snap.Events) - logLines
	if start < 0 {
		start = 0
	}
	for i, entry := range snap.Events[start:] {
		drawText(s, 0, 9+i, entry, styleLog)
	}

	if u.notice != "" {
		drawText(s, 0, 9+logLines, u.notice, styleWarning)
	}
	drawText(s, 0, 10+logLines, "Command> "+u.input, styleInput)
	s.ShowCursor(len("Command> ")+len(u.input), 10+logLines)

	if u.help {
		u.drawHelp(12 + logLines)
	}
	s.Show()
}

// drawRunwayCue shows which way the runway heading lies relative to the nose.
func (u *UI) drawRunwayCue(y int, snap sim.Snapshot) {
	d := compass.Delta(snap.HeadingDeg, u.runway)
	var cue string
	switch {
	case d < -3:
		cue = fmt.Sprintf("runway cue: <<< turn left %3.0f", -d)
	case d > 3:
		cue = fmt.Sprintf("runway cue: turn right %3.0f >>>", d)
	default:
		cue = "runway cue: === aligned ==="
	}
	drawText(u.screen, 0, y, cue, styleCue)
}

func (u *UI) drawHelp(y int) {
	lines := []string{
		"throttle <0-100>    pitch <-15..20>     turn <L|R> <deg>",
		"flaps <0-3>         gear up|down        declare mayday",
		"shutdown <engine>   fire bottle         oxygen on|off",
		"tick                status              quit",
	}
	for i, l := range lines {
		drawText(u.screen, 0, y+i, l, styleWarning)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func smokeStyle(smoke bool) tcell.Style {
	if smoke {
		return styleAlarm
	}
	return styleDefault
}
