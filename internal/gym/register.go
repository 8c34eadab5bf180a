package gym

import (
	"fmt"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/registry"
)

// Registered environment IDs.
const (
	EnvSnake       = "snake"
	EnvSnakeCustom = "snake_custom"
)

func init() {
	register(EnvSnake, "Snake", false)
	register(EnvSnakeCustom, "Snake (fixed spawn)", true)
}

func register(id, title string, custom bool) {
	registry.Register(id, title, func(cfg config.SnakeConfig) (registry.Env, error) {
		cfg.Spawn.Custom = custom
		env, err := NewSnakeEnv(id, title, cfg)
		if err != nil {
			return nil, err
		}
		return env, nil
	})
}

// Create builds a registered snake environment with its concrete type.
func Create(id string, cfg config.SnakeConfig) (*SnakeEnv, error) {
	env, err := registry.Create(id, cfg)
	if err != nil {
		return nil, err
	}
	se, ok := env.(*SnakeEnv)
	if !ok {
		return nil, fmt.Errorf("gym: env %q is not a snake environment", id)
	}
	return se, nil
}
