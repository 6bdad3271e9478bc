package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// DefaultSoftDropHold is how long a Down key press counts as held.
// Terminals report no key releases, so each press or auto-repeat renews it.
const DefaultSoftDropHold = 150 * time.Millisecond

// Rows below the game screen taken by the short and full help views.
const (
	shortHelpRows = 1
	fullHelpRows  = 3
)

// Game is what the model drives. Games contain pure logic and draw into a
// core.Screen; they never see Bubble Tea types.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
}

// Options configures optional model behavior.
type Options struct {
	// Recorder receives every frame that advanced the game.
	Recorder *replay.Recorder

	// Player, when set, supplies frames instead of the keyboard. The game
	// passed to the model should be Player.Game().
	Player *replay.Player

	// Logger receives per-frame game events at debug level.
	Logger *log.Logger

	// SoftDropHold overrides DefaultSoftDropHold.
	SoftDropHold time.Duration
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState

	keys GameKeyMap
	help help.Model

	recorder *replay.Recorder
	player   *replay.Player
	logger   *log.Logger

	softDropHold  time.Duration
	softDropUntil time.Time
	lastTick      time.Time
	frames        uint64

	status   string
	quitting bool

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewModel creates a model for the given game. Unless a replay player is
// driving it, the game is reset with cfg.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hold := opts.SoftDropHold
	if hold <= 0 {
		hold = DefaultSoftDropHold
	}

	screenH := max(0, cfg.ScreenH-shortHelpRows)
	if opts.Player == nil {
		game.Reset(core.RuntimeConfig{ScreenW: cfg.ScreenW, ScreenH: screenH, TickRate: cfg.TickRate, Seed: cfg.Seed})
	} else {
		game.Resize(cfg.ScreenW, screenH)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:         game,
		screen:       core.NewScreen(cfg.ScreenW, screenH),
		config:       cfg,
		inputFrame:   core.NewInputFrame(),
		gameState:    game.State(),
		keys:         DefaultGameKeyMap(),
		help:         h,
		recorder:     opts.Recorder,
		player:       opts.Player,
		logger:       logger,
		softDropHold: hold,
		now:          time.Now,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	action := m.keys.ActionFor(msg)

	// During playback only pausing is up to the viewer.
	if m.player != nil {
		if action == core.ActionPause {
			m.inputFrame.Set(core.ActionPause)
		}
		return m, nil
	}

	switch action {
	case core.ActionNone:
	case core.ActionSoftDrop:
		m.softDropUntil = m.now().Add(m.softDropHold)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(core.ActionRestart)
		}
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The session survives; the
// game only re-checks whether it fits.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.layout()
	return m, nil
}

// layout sizes the game screen to the window minus the help rows.
func (m *Model) layout() {
	rows := shortHelpRows
	if m.help.ShowAll {
		rows = fullHelpRows
	}
	w, h := m.config.ScreenW, max(0, m.config.ScreenH-rows)
	m.screen.Resize(w, h)
	m.game.Resize(w, h)
}

// handleTick runs one frame.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, t, m.config.TickRate)
	m.lastTick = t

	if m.player != nil {
		m.stepPlayback()
	} else {
		m.stepLive(t, dt)
	}
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// stepLive feeds the keyboard frame to the game and records it.
func (m *Model) stepLive(t time.Time, dt float64) {
	if t.Before(m.softDropUntil) {
		m.inputFrame.Set(core.ActionSoftDrop)
	}
	m.inputFrame.Elapsed = dt

	result := m.game.Step(m.inputFrame)
	m.afterStep(result)

	if !result.Frozen && m.recorder != nil {
		m.recorder.Record(m.inputFrame)
	}
}

// stepPlayback feeds the next stored frame. A viewer pause is stepped on its
// own so the stored frame is not lost.
func (m *Model) stepPlayback() {
	if m.inputFrame.Has(core.ActionPause) && !m.gameState.GameOver {
		m.afterStep(m.game.Step(m.inputFrame))
		return
	}

	frame, ok := m.player.Next()
	if !ok {
		m.status = "replay finished"
		return
	}
	result := m.game.Step(frame)
	if result.Frozen {
		m.player.Unread()
	}
	m.afterStep(result)

	played, total := m.player.Progress()
	m.status = fmt.Sprintf("replay %d/%d", played, total)
	if m.player.Done() {
		m.status = "replay finished"
	}
}

func (m *Model) afterStep(result core.StepResult) {
	m.frames++
	if result.State.GameOver && !m.gameState.GameOver {
		m.logger.Info("round over", "score", result.State.Score, "lines", result.State.Lines, "level", result.State.Level)
	}
	m.gameState = result.State
	for _, e := range result.Events {
		m.logger.Debug(e, "frame", m.frames)
	}
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.status = "saved " + filename
	m.logger.Info("screenshot saved", "path", path)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("  ")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// GameState returns the state after the most recent frame.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
