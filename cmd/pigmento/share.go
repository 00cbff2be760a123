package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/color"
	"github.com/vovakirdan/pigmento/internal/deeplink"
	"github.com/vovakirdan/pigmento/internal/game"
)

var flagTries int

var shareCmd = &cobra.Command{
	Use:   "share <hex>",
	Short: "Print the challenge link for a color",
	Long: `Print the link that starts a game on the given color.
With --tries the full challenge message is printed instead.

Examples:
  pigmento share A4F
  pigmento share '#aa44ff' --tries 6`,
	Args: cobra.ExactArgs(1),
	Run:  runShare,
}

func init() {
	shareCmd.Flags().IntVar(&flagTries, "tries", 0, "Guesses it took you (prints the challenge message)")
}

func runShare(_ *cobra.Command, args []string) {
	target, err := color.ParseHex(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagTries > 0 {
		fmt.Println(game.ShareMessage(flagTries, target))
		return
	}
	fmt.Println(deeplink.Build(target))
}
