package gym

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-env/internal/config"
)

// Replay stores a deterministic action trace for playback.
type Replay struct {
	Env     string             `yaml:"env"`
	Seed    int64              `yaml:"seed"` // episode seed, not the config seed
	Config  config.SnakeConfig `yaml:"config"`
	Actions []int              `yaml:"actions,flow"`
	Final   Stats              `yaml:"final"`
}

// NewReplay captures the current episode of env.
func NewReplay(env *SnakeEnv) *Replay {
	return &Replay{
		Env:     env.ID(),
		Seed:    env.EpisodeSeed(),
		Config:  env.Config(),
		Actions: env.Actions(),
		Final:   env.Stats(),
	}
}

// Save writes the replay to a YAML file.
func (r *Replay) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("gym: encode replay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gym: write replay: %w", err)
	}
	return nil
}

// LoadReplay reads a replay from a YAML file.
func LoadReplay(path string) (*Replay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gym: read replay: %w", err)
	}
	var r Replay
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("gym: parse replay %s: %w", path, err)
	}
	return &r, nil
}

// Playback re-simulates the replay. onFrame, if set, is called with the
// environment after reset and after every action.
func (r *Replay) Playback(onFrame func(env *SnakeEnv) error) (Stats, error) {
	env, err := NewSnakeEnv(r.Env, r.Env, r.Config)
	if err != nil {
		return Stats{}, err
	}
	defer env.Close()

	if _, err := env.ResetSeed(r.Seed); err != nil {
		return Stats{}, err
	}
	if onFrame != nil {
		if err := onFrame(env); err != nil {
			return Stats{}, err
		}
	}
	for i, a := range r.Actions {
		if res, err := env.Step(a); err != nil && !res.Done {
			return env.Stats(), fmt.Errorf("gym: replay action %d: %w", i, err)
		}
		if onFrame != nil {
			if err := onFrame(env); err != nil {
				return env.Stats(), err
			}
		}
	}
	return env.Stats(), nil
}

// Verify plays the replay back and checks the final stats match.
func (r *Replay) Verify() error {
	got, err := r.Playback(nil)
	if err != nil {
		return err
	}
	if got != r.Final {
		return fmt.Errorf("gym: replay diverged: got %+v, recorded %+v", got, r.Final)
	}
	return nil
}
