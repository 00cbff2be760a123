package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pigmento/internal/httpapi"
	"github.com/vovakirdan/pigmento/internal/platform/tui"
)

var (
	flagSSHAddr  string
	flagHostKey  string
	flagHTTPAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Pigmento SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
Online battles pair two connections through a lobby code.
A challenge link can be passed as the SSH command.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pigmento/host_key

Examples:
  pigmento serve                           # Listen on the configured address
  pigmento serve --ssh :2222               # Listen on port 2222
  pigmento serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235
  ssh localhost -p 23235 -t pigmento://pigmento.com/guess/QTRG`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP link resolver",
	Long: `Serve challenge links and statistics over HTTP.

Endpoints:
  GET /health
  GET /guess/{payload}
  GET /resolve?link=<link>
  GET /v1/stats

Examples:
  pigmento web
  pigmento web --http :9000`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagSSHAddr != "" {
		cfg.SSH.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}

	store := openStore(cfg)
	defer closeStore(store)

	serverCfg := tui.SSHServerConfigFromConfig(cfg)
	server, err := tui.NewSSHServer(serverCfg, store, newLogger("pigmento-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Pigmento SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if flagHTTPAddr != "" {
		cfg.HTTP.Address = flagHTTPAddr
	}

	store := openStore(cfg)
	defer closeStore(store)

	var stats httpapi.StatsSource
	if store != nil {
		stats = store
	}
	server := httpapi.New(stats, newLogger("pigmento-http"), cfg.HTTP.RequestTimeout())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.HTTP.Address); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
