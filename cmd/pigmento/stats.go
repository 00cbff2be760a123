package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/platform/tui"
)

var (
	flagStatsJSON bool
	flagStatsTUI  bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded statistics",
	Long: `Display solo, battle and online statistics.

Examples:
  pigmento stats
  pigmento stats --json
  pigmento stats --tui`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsJSON, "json", false, "Print statistics as JSON")
	statsCmd.Flags().BoolVar(&flagStatsTUI, "tui", false, "Browse recent games interactively")
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsTUI {
		settings := localSettings(cfg)
		if _, err := tui.RunStats(store, settings.Runtime.ScreenW, settings.Runtime.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	stats, err := store.AllStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	if flagStatsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Println("Solo")
	if stats.Solo.Played == 0 {
		fmt.Println("  No games recorded yet. Run 'pigmento play' to start.")
	} else {
		fmt.Printf("  Played       %d\n", stats.Solo.Played)
		fmt.Printf("  Won          %d (%.0f%%)\n", stats.Solo.Won, stats.Solo.WinRate*100)
		fmt.Printf("  Avg guesses  %.1f\n", stats.Solo.AvgGuesses)
		fmt.Printf("  Best         %d\n", stats.Solo.BestGuesses)
		fmt.Printf("  Last played  %s\n", stats.Solo.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	fmt.Println("Battle")
	fmt.Printf("  Rounds       %d\n", stats.Battle.Rounds)
	fmt.Printf("  P1 : P2      %d : %d\n", stats.Battle.Wins1, stats.Battle.Wins2)
	fmt.Printf("  Avg guesses  %.1f\n", stats.Battle.AvgGuesses)
	fmt.Println()

	fmt.Println("Online")
	fmt.Printf("  Matches      %d\n", stats.Online.Matches)
	fmt.Printf("  Completed    %d\n", stats.Online.Completed)
	fmt.Printf("  Disconnects  %d\n", stats.Online.Disconnects)
	fmt.Printf("  Rounds       %d\n", stats.Online.Rounds)
}
