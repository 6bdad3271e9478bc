package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/replay"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagWatch bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded game",
	Long: `Re-simulate a recorded game from its seed and input frames and print
the final state. With --watch the game is played back in the terminal
at its recorded tick rate; P pauses playback and Q stops it.

Examples:
  tetris replay 3
  tetris replay 3 --watch`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagWatch, "watch", false, "Play the replay back in the terminal")
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", args[0])
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	r, frames, err := store.Replay(id)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no replay with id %d\n", id)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}

	if flagWatch {
		if err := watchReplay(r, frames); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	snap, err := replay.Run(r, frames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Replay %d: %s, seed %d, %d frames\n", r.ID, r.Preset, r.Seed, len(frames))
	fmt.Println(snap.String())
}

// watchReplay plays r back in the terminal.
func watchReplay(r storage.Replay, frames []storage.Frame) error {
	logger, closeLog, err := openGameLogger()
	if err != nil {
		cliLogger.Warn("game log disabled", "path", flagLogFile, "err", err)
	}
	defer closeLog()

	width, height := terminalSize()
	player, err := replay.NewPlayer(r, frames, width, height)
	if err != nil {
		return err
	}

	tickRate := r.TickRate
	if tickRate <= 0 {
		tickRate = flagFPS
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: tickRate,
		Seed:     r.Seed,
	}
	return tui.Run(player.Game(), cfg, tui.Options{Player: player, Logger: logger})
}
