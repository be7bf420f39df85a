// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, so the platform can list
// and start them without importing game packages directly.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/silhouette-runner/internal/core"
)

// Game is the interface the platform drives. Implementations are pure
// simulations: the platform owns input mapping, the tick loop, persistence
// and the terminal.
type Game interface {
	// ID returns the unique identifier (e.g. "runner").
	// Used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh run. Called once at start and again on restart.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick and returns the state
	// after it together with the events emitted during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current world into the screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// RunStats summarises one finished run.
type RunStats struct {
	Score             int
	Wave              int
	Elapsed           time.Duration
	EnemiesDefeated   int
	PowerUpsCollected int
	DamageTaken       int
	Seed              int64
}

// Recorder is implemented by games that can report statistics for the run
// history.
type Recorder interface {
	RunStats() RunStats
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Stats returns the run statistics of g, or false if it does not keep any.
func Stats(g Game) (RunStats, bool) {
	r, ok := g.(Recorder)
	if !ok {
		return RunStats{}, false
	}
	return r.RunStats(), true
}
