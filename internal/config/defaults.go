package config

import (
	_ "embed"
)

//go:embed defaults/pigmento.yaml
var defaultPigmentoYAML []byte

// DefaultConfig returns the built-in configuration.
// It mirrors defaults/pigmento.yaml and is used if the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Midpoint:     7,
			HistoryLimit: 8,
			Seed:         0,
		},
		Review: ReviewConfig{
			Enabled:      true,
			Threshold:    5,
			CooldownDays: 130,
		},
		Battle: BattleConfig{
			PointsToWin: 0,
		},
		SSH: SSHConfig{
			Address:             ":23235",
			IdleTimeoutMinutes:  30,
			LobbyTimeoutSeconds: 120,
		},
		HTTP: HTTPConfig{
			Address:               ":8088",
			RequestTimeoutSeconds: 10,
		},
		Storage: StorageConfig{
			Path: "~/.pigmento/pigmento.db",
		},
	}
}
