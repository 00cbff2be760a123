package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list [mode]",
	Short: "List all game modes",
	Long: `Shows a list of all modes registered in Pigmento.
With a mode ID, shows that mode only.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	if len(args) == 1 {
		info, ok := registry.Info(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
			os.Exit(1)
		}
		fmt.Printf("%s: %s (%s)\n", info.ID, info.Title, playersText(info.Players))
		return
	}

	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Players", "Title")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-------", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %-7d  %s\n", maxIDLen, g.ID, g.Players, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'pigmento play' or 'pigmento battle' to start.")
}

func playersText(n int) string {
	if n == 1 {
		return "1 player"
	}
	return fmt.Sprintf("%d players", n)
}
