package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round of tetris.

Controls:
  Left/A, Right/D  - Move
  Up/W/X           - Rotate clockwise
  Down/S           - Soft drop (hold)
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 0.80s per row at level 1, faster every level
  normal - 0.60s per row at level 1, faster every level
  hard   - 0.40s per row at level 1, faster every level
  fixed  - No speed-up, stays at the config's initial delay

Examples:
  tetris play
  tetris play --difficulty hard
  tetris play --seed 42 --record
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagRecord, "record", false, "Save the session to the replay database")
}

// loadGameConfig resolves --config and --difficulty into a validated config.
func loadGameConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyTetrisPreset(&cfg, preset)
	}
	return cfg, cfg.Validate()
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: tetris needs an interactive terminal")
		os.Exit(1)
	}

	logger, closeLog, err := openGameLogger()
	if err != nil {
		cliLogger.Warn("game log disabled", "path", flagLogFile, "err", err)
	}
	defer closeLog()

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game := tetris.New(gameCfg)
	opts := tui.Options{Logger: logger}
	var rec *replay.Recorder
	if flagRecord {
		rec = replay.NewRecorder()
		opts.Recorder = rec
	}

	runErr := tui.Run(game, cfg, opts)

	if rec != nil && rec.Len() > 0 {
		saveRecording(game, rec)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	state := game.State()
	fmt.Printf("Score: %d  Lines: %d  Level: %d\n", state.Score, state.Lines, state.Level)
}

// saveRecording stores a finished session. Failure only loses the replay.
func saveRecording(game *tetris.Game, rec *replay.Recorder) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		cliLogger.Warn("replay not saved", "err", err)
		return
	}
	defer store.Close()

	id, err := replay.Save(store, game, flagFPS, rec)
	if err != nil {
		cliLogger.Warn("replay not saved", "err", err)
		return
	}
	fmt.Printf("Saved replay %d (%d frames). Watch it with: tetris replay %d --watch\n", id, rec.Len(), id)
}
