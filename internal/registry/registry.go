// Package registry holds the playable modes. Modes register a factory in
// init() so the CLI and the terminal platform can list and create them by ID.
package registry

import (
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/shaperun/internal/core"
)

// Game is what the platform drives: a fixed-tick simulation that renders
// into a character buffer. Implementations never touch the terminal.
type Game interface {
	// ID is the stable identifier used by the CLI and the run history.
	ID() string

	// Title is the display name.
	Title() string

	// Reset prepares a new run using the runtime screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick with the abstracted input.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, distance and run status.
	State() core.GameState
}

// Describer is implemented by games that provide a one-line summary for
// listings.
type Describer interface {
	Describe() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
	order   []string
)

// Register adds a game factory. Panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Describe()
	}
	entries[id] = entry{factory: f, info: info}
	order = append(order, id)
}

// List returns registered games in registration order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(order))
	for _, id := range order {
		result = append(result, entries[id].info)
	}
	return result
}

// IDs returns the registered IDs sorted alphabetically.
func IDs() []string {
	mu.RLock()
	defer mu.RUnlock()

	ids := slices.Clone(order)
	slices.Sort(ids)
	return ids
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
