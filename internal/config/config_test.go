package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfig, EnvDB, EnvSSHAddr, EnvHTTPAddr, EnvSeed} {
		t.Setenv(k, "")
	}
	t.Setenv("HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pigmento.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(defaultPigmentoYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded default = %+v\nexpected %+v", cfg, DefaultConfig())
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Load(\"\") = %+v, expected defaults", cfg)
	}
}

func TestLoadUserConfig(t *testing.T) {
	clearEnv(t)
	home := os.Getenv("HOME")
	dir := filepath.Join(home, ".pigmento", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "pigmento.yaml"), []byte("battle:\n  points_to_win: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Battle.PointsToWin != 3 {
		t.Errorf("Battle.PointsToWin = %d, expected 3", cfg.Battle.PointsToWin)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "game:\n  history_limit: 20\nreview:\n  enabled: false\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.HistoryLimit != 20 {
		t.Errorf("Game.HistoryLimit = %d, expected 20", cfg.Game.HistoryLimit)
	}
	if cfg.Review.Enabled {
		t.Error("Review.Enabled should be false")
	}
	if cfg.Game.Midpoint != 7 {
		t.Errorf("Game.Midpoint = %d, expected default 7", cfg.Game.Midpoint)
	}
	if cfg.Review.Threshold != 5 {
		t.Errorf("Review.Threshold = %d, expected default 5", cfg.Review.Threshold)
	}
	if cfg.SSH.Address != ":23235" {
		t.Errorf("SSH.Address = %q, expected default", cfg.SSH.Address)
	}
}

func TestLoadMidpointZero(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "game:\n  midpoint: 0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Game.Midpoint != 0 {
		t.Errorf("Game.Midpoint = %d, expected 0", cfg.Game.Midpoint)
	}
}

func TestLoadFromEnvPath(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "http:\n  address: \":9999\"\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Address != ":9999" {
		t.Errorf("HTTP.Address = %q, expected :9999", cfg.HTTP.Address)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		body    string
		wantSub string
	}{
		{"bad yaml", "game: [", "failed to parse"},
		{"midpoint too high", "game:\n  midpoint: 16\n", "game.midpoint must be at most 15"},
		{"zero threshold", "review:\n  threshold: 0\n", "review.threshold must be at least 1"},
		{"empty address", "ssh:\n  address: \"\"\n", "ssh.address is required"},
		{"short lobby timeout", "ssh:\n  lobby_timeout_seconds: 5\n", "ssh.lobby_timeout_seconds must be at least 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded, expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Load error = %q, expected it to contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDB, "/tmp/other.db")
	t.Setenv(EnvSSHAddr, ":2222")
	t.Setenv(EnvHTTPAddr, ":8081")
	t.Setenv(EnvSeed, "42")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Storage.Path != "/tmp/other.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.SSH.Address != ":2222" {
		t.Errorf("SSH.Address = %q", cfg.SSH.Address)
	}
	if cfg.HTTP.Address != ":8081" {
		t.Errorf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("Game.Seed = %d", cfg.Game.Seed)
	}
}

func TestEnvSeedInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSeed, "abc")
	if _, err := Load(""); err == nil {
		t.Error("Load with a non-numeric seed should fail")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("PIGMENTO_DB=/data/env.db\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	// godotenv does not override variables that are set, even to "".
	os.Unsetenv(EnvDB)
	t.Cleanup(func() { os.Unsetenv(EnvDB) })

	if err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv failed: %v", err)
	}
	if got := os.Getenv(EnvDB); got != "/data/env.db" {
		t.Errorf("%s = %q, expected /data/env.db", EnvDB, got)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Review.Cooldown(); got != 130*24*time.Hour {
		t.Errorf("Review.Cooldown() = %v", got)
	}
	if got := cfg.SSH.IdleTimeout(); got != 30*time.Minute {
		t.Errorf("SSH.IdleTimeout() = %v", got)
	}
	if got := cfg.SSH.LobbyTimeout(); got != 2*time.Minute {
		t.Errorf("SSH.LobbyTimeout() = %v", got)
	}
	if got := cfg.HTTP.RequestTimeout(); got != 10*time.Second {
		t.Errorf("HTTP.RequestTimeout() = %v", got)
	}
}
