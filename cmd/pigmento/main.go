// pigmento is a color-guessing game for the terminal.
//
// Usage:
//
//	pigmento                 - Start the menu
//	pigmento play            - Play a solo game
//	pigmento battle          - Two players on one keyboard
//	pigmento open <link>     - Guess the color from a challenge link
//	pigmento share <hex>     - Print the challenge link for a color
//	pigmento serve           - Start SSH server for remote and online play
//	pigmento web             - Start the HTTP link resolver
//	pigmento stats           - Show recorded statistics
//	pigmento list            - List game modes
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.pigmento/configs, ./configs)
//	--seed <value>  - Set RNG seed for reproducible targets
//	--db <path>     - Set database path (default: ~/.pigmento/pigmento.db)
//	--debug         - Verbose logging
//	--quiet         - Never ring the terminal bell
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pigmento/internal/config"
	// Import modes to register them
	_ "github.com/vovakirdan/pigmento/internal/game"
	"github.com/vovakirdan/pigmento/internal/platform/tui"
	"github.com/vovakirdan/pigmento/internal/storage"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
	flagDebug  bool
	flagQuiet  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pigmento",
	Short: "Pigmento - How close can you mix it?",
	Long: `Pigmento shows you a color and three sliders. Mix red, green and blue
until your guess matches the target exactly.

Available commands:
  menu     - Interactive mode picker (default)
  play     - Solo game
  battle   - Two players racing on one keyboard
  open     - Play the color from a challenge link
  share    - Print the challenge link for a color
  serve    - Start SSH server for remote and online play
  web      - Start the HTTP link resolver
  stats    - Show recorded statistics
  list     - Show all game modes

Examples:
  pigmento
  pigmento play --seed 42
  pigmento open pigmento://pigmento.com/guess/QTRG
  pigmento serve --ssh :2222`,
	Run: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to database (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagQuiet, "quiet", false, "Never ring the terminal bell")

	// Add subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(battleCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listCmd)
}

// loadConfig reads .env, the config file and flag overrides.
// It exits on an invalid config.
func loadConfig() config.Config {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	return cfg
}

// openStore opens the database, or returns nil after a warning so the
// game can still be played without history.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

// localSettings derives screen settings for the local terminal.
func localSettings(cfg config.Config) tui.Settings {
	settings := tui.SettingsFromConfig(cfg)

	// Get terminal size
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		settings.Runtime.ScreenW = w
		settings.Runtime.ScreenH = h
	}

	if !flagQuiet {
		settings.Bell = os.Stdout
	}
	return settings
}

func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
