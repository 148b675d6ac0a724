// Package registry holds the game modes the platform can start.
// Modes register a factory from init(), so the CLI, menu and SSH server
// find them without importing each mode by name.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/meteorblast/internal/core"
)

// Game is a playable mode driven by the platform's tick loop.
// Implementations hold no terminal state; the platform maps keys and mouse
// events to core actions and owns timing and rendering.
type Game interface {
	// ID is the stable identifier used by the CLI and the score tables
	// (e.g. "blockblast", "blockblast_zen").
	ID() string

	// Title is the display name shown in menus.
	Title() string

	// Reset deals a new game. Called at start and on restart after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one tick with this tick's input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into dst.
	Render(dst *core.Screen)

	// State reports score, progress and status.
	State() core.GameState
}

// Resizer is implemented by games that follow a terminal resize in place.
// The platform restarts games that do not implement it.
type Resizer interface {
	Resize(w, h int)
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. Panics on an empty or duplicate id.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if strings.TrimSpace(id) == "" {
		panic("registry: empty game id")
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates the mode registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
