package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/deeplink"
	"github.com/vovakirdan/pigmento/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a solo game",
	Long: `Guess a random color on your own.

Controls:
  W/S, Up/Down     - Select channel
  A/D, Left/Right  - Adjust channel
  Space/Enter      - Submit guess
  R                - New color
  C                - Share after a win
  Q/Ctrl+C         - Quit

Examples:
  pigmento play
  pigmento play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

var battleCmd = &cobra.Command{
	Use:   "battle",
	Short: "Two players race to the same color",
	Long: `Two players share one keyboard. The first exact match wins the round.

Controls:
  Player 1     - W/S select, A/D adjust, Space guess
  Player 2     - Up/Down select, Left/Right adjust, Enter guess
  R            - Next round (clears scores if nobody has won yet)
  X            - Reset scores
  Q/Ctrl+C     - Quit

Examples:
  pigmento battle`,
	Args: cobra.NoArgs,
	Run:  runBattle,
}

var openCmd = &cobra.Command{
	Use:   "open <link>",
	Short: "Play the color from a challenge link",
	Long: `Start a solo game on the color a friend shared.

Examples:
  pigmento open pigmento://pigmento.com/guess/QTRG`,
	Args: cobra.ExactArgs(1),
	Run:  runOpen,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer closeStore(store)

	if err := tui.RunSolo(store, localSettings(cfg), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func runBattle(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	store := openStore(cfg)
	defer closeStore(store)

	if err := tui.RunBattle(store, localSettings(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func runOpen(_ *cobra.Command, args []string) {
	target, err := deeplink.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := loadConfig()
	store := openStore(cfg)
	defer closeStore(store)

	if err := tui.RunSolo(store, localSettings(cfg), &target); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
