package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Pigmento with a mode picker menu",
	Long: `Start Pigmento in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Statistics
  Q            - Quit

Examples:
  pigmento menu
  pigmento menu --db ./pigmento.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer closeStore(store)

	settings := localSettings(cfg)

	// Menu loop
	for {
		result, err := tui.RunMenu(settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Keep any size changes
		if result.Width > 0 && result.Height > 0 {
			settings.Runtime.ScreenW = result.Width
			settings.Runtime.ScreenH = result.Height
		}

		if result.Quit {
			break
		}

		if result.WantsStats {
			goBack, statsErr := tui.RunStats(store, settings.Runtime.ScreenW, settings.Runtime.ScreenH)
			if statsErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", statsErr)
			}
			if goBack {
				continue
			}
			break
		}

		switch result.GameID {
		case "solo":
			err = tui.RunSolo(store, settings, nil)
		case "battle":
			err = tui.RunBattle(store, settings)
		default:
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
