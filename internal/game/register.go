package game

import (
	"github.com/vovakirdan/pigmento/internal/core"
	"github.com/vovakirdan/pigmento/internal/registry"
)

var (
	_ registry.Game = (*Session)(nil)
	_ registry.Game = (*Battle)(nil)
)

func init() {
	registry.Register("solo", func(cfg core.RuntimeConfig) registry.Game {
		return NewSession(OptionsFromConfig(cfg))
	})
	registry.Register("battle", func(cfg core.RuntimeConfig) registry.Game {
		return NewBattle(OptionsFromConfig(cfg))
	})
}
