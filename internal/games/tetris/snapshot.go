package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Seed        int64
	Score       int
	Lines       int
	Level       int
	Active      engine.ActivePiece
	Next        engine.Kind
	StackHeight int
	Filled      int // Locked cells on the board
	State       GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	board := g.session.Board()
	filled := 0
	for y := range engine.Rows {
		for x := range engine.Cols {
			if !board.At(x, y).Empty() {
				filled++
			}
		}
	}

	return Snapshot{
		Tick:        g.tick,
		Seed:        g.seed,
		Score:       g.session.Score(),
		Lines:       g.session.Lines(),
		Level:       g.session.Level(),
		Active:      g.session.Active(),
		Next:        g.session.Next(),
		StackHeight: board.Height(),
		Filled:      filled,
		State:       state,
	}
}

// String formats the snapshot for CLI output.
func (s Snapshot) String() string {
	return fmt.Sprintf("tick=%d seed=%d state=%s score=%d lines=%d level=%d stack=%d filled=%d active=%s/%s@(%d,%d) next=%s",
		s.Tick, s.Seed, s.State, s.Score, s.Lines, s.Level, s.StackHeight, s.Filled,
		s.Active.Kind, s.Active.Orientation, s.Active.X, s.Active.Y, s.Next)
}
