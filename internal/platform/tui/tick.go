// Package tui provides the Bubble Tea integration for the tetris game.
// It runs the frame loop, maps keys to actions, records or plays back
// replays and turns the game's screen buffer into styled terminal output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame. It carries the time the tick fired.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after a
// frame interval at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDelta returns the seconds between two ticks, falling back to the
// nominal frame interval for the first tick or a clock that went backwards.
func frameDelta(prev, now time.Time, tickRate int) float64 {
	nominal := 1.0 / float64(max(1, tickRate))
	if prev.IsZero() || !now.After(prev) {
		return nominal
	}
	return min(now.Sub(prev).Seconds(), maxFrameDelta)
}

// maxFrameDelta caps one frame's elapsed time, e.g. after the terminal was
// suspended.
const maxFrameDelta = 0.25
