// Package registry provides a global registry for environment factories.
// Environments register themselves in init() functions, allowing the CLI and
// the network front ends to discover and instantiate them by ID.
package registry

import (
	"fmt"
	"image"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/core"
)

// RenderMode selects how Render presents the current frame.
type RenderMode string

const (
	// RenderHuman draws to the environment's display and returns no image.
	RenderHuman RenderMode = "human"
	// RenderRGBArray returns the frame as an image.
	RenderRGBArray RenderMode = "rgb_array"
)

// ParseRenderMode validates a render mode name.
func ParseRenderMode(s string) (RenderMode, error) {
	switch RenderMode(s) {
	case RenderHuman, RenderRGBArray:
		return RenderMode(s), nil
	}
	return "", fmt.Errorf("registry: unknown render mode %q", s)
}

// Env is the step-based interface every environment implements.
type Env interface {
	// ID returns the registered identifier (e.g., "snake").
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a new episode and returns its first observation.
	Reset() (core.Observation, error)

	// Step applies one action and reports the outcome.
	// Stepping a finished episode keeps returning the terminal result.
	Step(action int) (core.StepResult, error)

	// Render presents the current frame. RenderHuman returns a nil image.
	Render(mode RenderMode) (image.Image, error)

	// Close releases display resources.
	Close() error
}

// EnvInfo contains metadata about a registered environment.
type EnvInfo struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

// Factory builds a new environment from a configuration.
type Factory func(cfg config.SnakeConfig) (Env, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an environment factory to the registry.
// Typically called from an init() function.
// Panics if an environment with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: env %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered environments, sorted by ID.
func List() []EnvInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EnvInfo, 0, len(factories))
	for id := range factories {
		result = append(result, EnvInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new environment by its ID.
// Returns an error if the ID is not registered or the factory rejects cfg.
func Create(id string, cfg config.SnakeConfig) (Env, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown env %q", id)
	}

	env, err := f(cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return env, nil
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
