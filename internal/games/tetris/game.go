// Package tetris adapts the falling-block engine to the platform: it maps
// input frames to engine intents, handles pause and window size, and draws
// the board into a core.Screen.
package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// ID is the game identifier used in file names and the replay journal.
const ID = "tetris"

// Game implements the platform game contract for tetris.
type Game struct {
	cfg     config.TetrisConfig
	session *engine.Session
	seed    int64
	tick    uint64

	// frameDt is used when an input frame carries no elapsed time.
	frameDt float64

	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game with the given configuration. Call Reset before Step.
func New(cfg config.TetrisConfig) *Game {
	return &Game{cfg: cfg}
}

// TimingFromConfig converts the gravity settings into engine timing.
func TimingFromConfig(cfg config.TetrisConfig) engine.Timing {
	return engine.Timing{
		InitialDelay:  cfg.Gravity.InitialDelay,
		LevelStep:     cfg.Gravity.LevelStep,
		MinDelay:      cfg.Gravity.MinDelay,
		SoftDropDelay: cfg.Gravity.SoftDropDelay,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.seed
}

// Reset starts a new session seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed = cfg.Seed
	g.session = engine.NewSession(rand.New(rand.NewSource(cfg.Seed)), TimingFromConfig(g.cfg))
	g.tick = 0
	g.paused = false
	g.frameDt = 1.0 / 60
	if cfg.TickRate > 0 {
		g.frameDt = 1.0 / float64(cfg.TickRate)
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < MinWidth || h < MinHeight
}

// Step advances the game by one frame.
//
// A frame that toggles pause is consumed by the toggle. Paused frames and
// frames while the window is too small do not reach the engine, so the
// result reports them as Frozen.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
		return core.StepResult{State: g.State(), Frozen: true}
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State(), Frozen: true}
	}

	g.tick++
	dt := in.Elapsed
	if dt <= 0 {
		dt = g.frameDt
	}
	ev := g.session.Tick(intentsFromFrame(in), dt)

	return core.StepResult{State: g.State(), Events: describeEvents(ev, g.session)}
}

func intentsFromFrame(in core.InputFrame) engine.Intents {
	return engine.Intents{
		MoveLeft:     in.Has(core.ActionMoveLeft),
		MoveRight:    in.Has(core.ActionMoveRight),
		Rotate:       in.Has(core.ActionRotate),
		HardDrop:     in.Has(core.ActionHardDrop),
		SoftDropHeld: in.Has(core.ActionSoftDrop),
		Restart:      in.Has(core.ActionRestart),
	}
}

func describeEvents(ev engine.TickEvents, s *engine.Session) []string {
	var out []string
	if ev.Restarted {
		out = append(out, "restarted")
	}
	if ev.Locked {
		out = append(out, "locked")
	}
	if ev.LinesCleared > 0 {
		out = append(out, fmt.Sprintf("cleared %d (score %d, level %d)", ev.LinesCleared, s.Score(), s.Level()))
	}
	if ev.GameOver {
		out = append(out, fmt.Sprintf("game over (score %d, lines %d)", s.Score(), s.Lines()))
	}
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Lines:    g.session.Lines(),
		Level:    g.session.Level(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
	}
}

// Session exposes the engine session for tests and headless tools.
func (g *Game) Session() *engine.Session {
	return g.session
}
