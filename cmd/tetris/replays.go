package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded games",
	Long: `Browse recorded games in a table. Enter watches the selected replay
and D deletes it. With --plain the list is printed instead.

Record a game with: tetris play --record

Examples:
  tetris replays
  tetris replays --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the list instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of replays to print with --plain")
}

func runReplays(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagPlain {
		printReplays(store)
		return
	}

	width, height := terminalSize()
	id, err := tui.RunBrowser(store, width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
		os.Exit(1)
	}
	if id == 0 {
		return
	}

	r, frames, err := store.Replay(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replay: %v\n", err)
		os.Exit(1)
	}
	if err := watchReplay(r, frames); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printReplays(store *storage.Store) {
	replays, err := store.ListReplays(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading replays: %v\n", err)
		os.Exit(1)
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println("Record one with: tetris play --record")
		return
	}

	fmt.Println("Recorded Games")
	fmt.Println()
	fmt.Printf("  %-5s  %-16s  %-10s  %-7s  %s\n", "ID", "Recorded", "Difficulty", "Frames", "Seed")
	fmt.Printf("  %-5s  %-16s  %-10s  %-7s  %s\n", "--", "--------", "----------", "------", "----")
	for _, r := range replays {
		fmt.Printf("  %-5d  %-16s  %-10s  %-7d  %d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Preset, r.Ticks, r.Seed)
	}
	fmt.Println()
	fmt.Println("Watch one with: tetris replay <id> --watch")
}
