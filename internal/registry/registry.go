// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pigmento/internal/core"
)

// Game is the interface every Pigmento mode implements.
// Modes contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform picks a view for the concrete engine type.
type Game interface {
	// ID returns a unique identifier for this mode (e.g., "solo", "battle").
	// Used for CLI commands and storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Players returns how many people play at one screen.
	Players() int
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID      string
	Title   string
	Players int
}

// Factory creates a new instance of a mode.
type Factory func(cfg core.RuntimeConfig) Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from an init() function.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	g := f(core.DefaultConfig())
	infos[id] = GameInfo{
		ID:      id,
		Title:   g.Title(),
		Players: g.Players(),
	}
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new mode by its ID.
// Returns an error if the ID is not registered.
func Create(id string, cfg core.RuntimeConfig) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(cfg), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Info returns metadata for a registered mode.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	info, ok := infos[id]
	return info, ok
}
