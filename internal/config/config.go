// Package config provides YAML-based configuration loading for Pigmento.
package config

import "time"

// Config is the complete Pigmento configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Review  ReviewConfig  `yaml:"review"`
	Battle  BattleConfig  `yaml:"battle"`
	SSH     SSHConfig     `yaml:"ssh"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
}

// GameConfig defines engine parameters shared by all modes.
type GameConfig struct {
	Midpoint     int   `yaml:"midpoint" validate:"min=0,max=15"`       // Slider start position
	HistoryLimit int   `yaml:"history_limit" validate:"min=1,max=100"` // Guesses listed on screen
	Seed         int64 `yaml:"seed"`                                   // 0 = time based
}

// ReviewConfig defines when a solo win asks for a review.
type ReviewConfig struct {
	Enabled      bool `yaml:"enabled"`
	Threshold    int  `yaml:"threshold" validate:"min=1"`     // Minimum guesses in the winning game
	CooldownDays int  `yaml:"cooldown_days" validate:"min=0"` // Days between prompts
}

// Cooldown returns the cooldown as a duration.
func (r ReviewConfig) Cooldown() time.Duration {
	return time.Duration(r.CooldownDays) * 24 * time.Hour
}

// BattleConfig defines two-player rules.
type BattleConfig struct {
	PointsToWin int `yaml:"points_to_win" validate:"min=0,max=99"` // 0 = endless
}

// SSHConfig defines the SSH server.
type SSHConfig struct {
	Address             string `yaml:"address" validate:"required"`
	HostKeyPath         string `yaml:"host_key_path"` // Empty = ~/.pigmento/host_key
	IdleTimeoutMinutes  int    `yaml:"idle_timeout_minutes" validate:"min=1"`
	LobbyTimeoutSeconds int    `yaml:"lobby_timeout_seconds" validate:"min=10"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// LobbyTimeout returns how long an unjoined lobby lives.
func (s SSHConfig) LobbyTimeout() time.Duration {
	return time.Duration(s.LobbyTimeoutSeconds) * time.Second
}

// HTTPConfig defines the share-link resolver.
type HTTPConfig struct {
	Address               string `yaml:"address" validate:"required"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds" validate:"min=1"`
}

// RequestTimeout returns the per-request timeout.
func (h HTTPConfig) RequestTimeout() time.Duration {
	return time.Duration(h.RequestTimeoutSeconds) * time.Second
}

// StorageConfig defines the database location.
type StorageConfig struct {
	Path string `yaml:"path" validate:"required"`
}
