package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

func newTestGame(seed int64) *Game {
	g := New(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 60})
	return g
}

func frameWith(elapsed float64, actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	f.Elapsed = elapsed
	return f
}

// playUntilGameOver hard-drops every frame. Pieces spawn centered, so the
// stack never completes a row and the round ends quickly.
func playUntilGameOver(t *testing.T, g *Game) {
	t.Helper()
	drop := frameWith(0, core.ActionHardDrop)
	for range 1000 {
		if g.State().GameOver {
			return
		}
		g.Step(drop)
	}
	t.Fatal("game did not end after 1000 hard drops")
}

func TestDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	for i := range 2000 {
		var in core.InputFrame
		switch i % 13 {
		case 2:
			in = frameWith(0.016, core.ActionMoveLeft)
		case 5:
			in = frameWith(0.016, core.ActionRotate)
		case 7:
			in = frameWith(0.016, core.ActionMoveRight, core.ActionSoftDrop)
		case 12:
			in = frameWith(0.016, core.ActionHardDrop, core.ActionRestart)
		default:
			in = frameWith(0.016)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%s\n%s", s1, s2)
	}
	if g1.Session().State() != g2.Session().State() {
		t.Error("engine states differ for identical seeds and inputs")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(1)
	startY := g.Session().Active().Y

	res := g.Step(frameWith(0.016, core.ActionPause))
	if !res.Frozen || !res.State.Paused {
		t.Fatalf("pause frame: Frozen=%v Paused=%v, expected both true", res.Frozen, res.State.Paused)
	}

	for range 10 {
		res = g.Step(frameWith(5.0, core.ActionHardDrop))
		if !res.Frozen {
			t.Fatal("paused frames should be frozen")
		}
	}
	if g.Session().Active().Y != startY || g.Snapshot().Filled != 0 {
		t.Error("paused game should not move or lock pieces")
	}

	res = g.Step(frameWith(5.0, core.ActionPause))
	if !res.Frozen || res.State.Paused {
		t.Errorf("unpause frame: Frozen=%v Paused=%v, expected frozen and unpaused", res.Frozen, res.State.Paused)
	}

	res = g.Step(frameWith(5.0))
	if res.Frozen {
		t.Error("frame after unpause should advance")
	}
	if g.Session().Active().Y != startY+1 {
		t.Errorf("Active().Y = %d, expected %d", g.Session().Active().Y, startY+1)
	}
}

func TestPauseIgnoredWhenGameOver(t *testing.T) {
	g := newTestGame(3)
	playUntilGameOver(t, g)

	res := g.Step(frameWith(0.016, core.ActionPause))
	if res.State.Paused {
		t.Error("pause should not toggle after game over")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(4)
	playUntilGameOver(t, g)

	res := g.Step(frameWith(0.016, core.ActionRestart))
	if res.State.GameOver {
		t.Fatal("Restart should start a new round")
	}
	if res.State.Score != 0 || res.State.Lines != 0 || res.State.Level != 1 {
		t.Errorf("state after restart = %+v, expected zero score and level 1", res.State)
	}
	if len(res.Events) == 0 || res.Events[0] != "restarted" {
		t.Errorf("Events = %v, expected restarted", res.Events)
	}
}

func TestGameOverEventReported(t *testing.T) {
	g := newTestGame(5)
	drop := frameWith(0, core.ActionHardDrop)
	for range 1000 {
		res := g.Step(drop)
		if res.State.GameOver {
			joined := strings.Join(res.Events, ",")
			if !strings.Contains(joined, "game over") {
				t.Errorf("Events = %v, expected a game over note", res.Events)
			}
			return
		}
	}
	t.Fatal("game did not end")
}

func TestTooSmallWindowFreezes(t *testing.T) {
	g := New(config.DefaultTetrisConfig())
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: MinWidth - 1, ScreenH: 24, TickRate: 60})

	res := g.Step(frameWith(5.0))
	if !res.Frozen {
		t.Error("too-small window should freeze the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, expected %s", g.Snapshot().State, StatePausedSmall)
	}

	screen := core.NewScreen(MinWidth-1, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("render should show the too-small message")
	}

	g.Resize(MinWidth, MinHeight)
	if res := g.Step(frameWith(0.016)); res.Frozen {
		t.Error("game should resume once the window is large enough")
	}
}

func TestElapsedFallback(t *testing.T) {
	g := newTestGame(9)
	startY := g.Session().Active().Y

	// Level 1 gravity is 0.6s; at 60 FPS that is 36 frames.
	for range 30 {
		g.Step(frameWith(0))
	}
	if g.Session().Active().Y != startY {
		t.Fatalf("piece fell after 0.5s, expected it to wait for 0.6s")
	}
	for range 10 {
		g.Step(frameWith(0))
	}
	if g.Session().Active().Y != startY+1 {
		t.Errorf("Active().Y = %d, expected %d", g.Session().Active().Y, startY+1)
	}
}

func TestIntentsFromFrame(t *testing.T) {
	in := frameWith(0, core.ActionMoveLeft, core.ActionRotate, core.ActionSoftDrop)
	got := intentsFromFrame(in)
	expected := engine.Intents{MoveLeft: true, Rotate: true, SoftDropHeld: true}
	if got != expected {
		t.Errorf("intentsFromFrame() = %+v, expected %+v", got, expected)
	}
}

func TestTimingFromConfig(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	config.ApplyTetrisPreset(&cfg, config.DifficultyFixed)
	timing := TimingFromConfig(cfg)
	if timing.LevelStep != 0 || timing.InitialDelay != cfg.Gravity.InitialDelay {
		t.Errorf("TimingFromConfig() = %+v, expected flat delay %v", timing, cfg.Gravity.InitialDelay)
	}
	if TimingFromConfig(config.DefaultTetrisConfig()) != engine.DefaultTiming() {
		t.Error("default config should map to default engine timing")
	}
}

func TestRenderLayout(t *testing.T) {
	g := newTestGame(21)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "SCORE", "LINES", "LEVEL", "NEXT", "normal"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}

	// Active piece, ghost and next preview are drawn in piece colors.
	activeColor := engine.Color(g.Session().Active().Kind)
	blocks := 0
	for y := range screen.Height() {
		for x := range screen.Width() {
			c := screen.GetCell(x, y)
			if c.Rune == blockRune && c.Color == activeColor {
				blocks++
			}
		}
	}
	if blocks < 4*cellW {
		t.Errorf("found %d active block cells, expected at least %d", blocks, 4*cellW)
	}
	if !strings.ContainsRune(out, ghostRune) {
		t.Error("ghost piece should be drawn on an empty board")
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(8)
	screen := core.NewScreen(80, 24)

	g.Step(frameWith(0, core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the pause overlay")
	}
	g.Step(frameWith(0, core.ActionPause))

	playUntilGameOver(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("finished game should show the game over overlay")
	}
}
