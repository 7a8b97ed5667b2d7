// Package tui provides the Bubble Tea front end for the arcade.
// It handles the terminal UI loop, input mapping, frame pacing, audio cues
// and persistence of finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDT returns the seconds elapsed between two ticks, clamped to maxDT.
// The first tick of a run (zero prev) yields the nominal interval.
func frameDT(prev, now time.Time, tickRate int, maxDT float64) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	dt := 1 / float64(tickRate)
	if !prev.IsZero() {
		dt = now.Sub(prev).Seconds()
	}
	if dt < 0 {
		dt = 0
	}
	if maxDT > 0 && dt > maxDT {
		dt = maxDT
	}
	return dt
}
