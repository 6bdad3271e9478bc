// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris                  - Play (same as tetris play)
//	tetris play             - Play a round
//	tetris replays          - Browse recorded games
//	tetris replay <id>      - Re-simulate a recorded game
//	tetris config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set replay database path (default: ~/.arcade/tetris.db)
//	--log-file <path>  - Write game events to a log file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris drops one of seven pieces at a time into a 10x20 well.
Complete rows to clear them; the game speeds up every 10 lines and
ends when a new piece has no room to spawn.

Available commands:
  play     - Play a round (default)
  replays  - Browse recorded games
  replay   - Re-simulate or watch a recorded game
  config   - Print the effective configuration

Examples:
  tetris
  tetris play --difficulty hard --record
  tetris replays
  tetris replay 3 --watch`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/tetris.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game events to this file")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}
