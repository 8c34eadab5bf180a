// Package gym exposes the snake world through the step-based environment
// interface: reset, step and render.
package gym

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/platform/term"
	"github.com/vovakirdan/snake-env/internal/registry"
	"github.com/vovakirdan/snake-env/internal/snake"
)

var (
	// ErrNotReset is returned by Step and Render before the first Reset.
	ErrNotReset = errors.New("gym: environment not reset")
	// ErrClosed is returned by every call after Close.
	ErrClosed = errors.New("gym: environment closed")
)

// Stats summarizes the current episode.
type Stats struct {
	Steps       int     `json:"steps" yaml:"steps"`
	TotalReward float64 `json:"total_reward" yaml:"total_reward"`
	FoodEaten   int     `json:"food_eaten" yaml:"food_eaten"`
	Length      int     `json:"length" yaml:"length"`
	Done        bool    `json:"done" yaml:"done"`
	DeathCause  string  `json:"death_cause" yaml:"death_cause"`
}

// SnakeEnv wraps one snake.World per episode.
// Episode seeds are drawn from an environment-level source, so a fixed
// config seed reproduces the whole sequence of episodes.
type SnakeEnv struct {
	id    string
	title string
	cfg   config.SnakeConfig
	world snake.Config

	seeds       *rand.Rand
	episodeSeed int64
	w           *snake.World
	stats       Stats
	actions     []int

	out    io.Writer
	screen *core.Screen
	closed bool
}

var _ registry.Env = (*SnakeEnv)(nil)

// NewSnakeEnv validates cfg and builds an environment. A zero seed picks
// one from the clock.
func NewSnakeEnv(id, title string, cfg config.SnakeConfig) (*SnakeEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	wc, err := cfg.World()
	if err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SnakeEnv{
		id:    id,
		title: title,
		cfg:   cfg,
		world: wc,
		seeds: rand.New(rand.NewSource(seed)),
		out:   os.Stdout,
	}, nil
}

// ID returns the registered identifier.
func (e *SnakeEnv) ID() string { return e.id }

// Title returns the display name.
func (e *SnakeEnv) Title() string { return e.title }

// Config returns the configuration the environment was built with.
func (e *SnakeEnv) Config() config.SnakeConfig { return e.cfg }

// SetOutput redirects human rendering.
func (e *SnakeEnv) SetOutput(w io.Writer) { e.out = w }

// Reset starts a new episode with the next seed from the environment source.
func (e *SnakeEnv) Reset() (core.Observation, error) {
	if e.closed {
		return core.Observation{}, ErrClosed
	}
	return e.ResetSeed(e.seeds.Int63())
}

// ResetSeed starts a new episode whose world draws from the given seed.
func (e *SnakeEnv) ResetSeed(seed int64) (core.Observation, error) {
	if e.closed {
		return core.Observation{}, ErrClosed
	}
	w, err := snake.NewWorld(e.world, rand.New(rand.NewSource(seed)))
	if err != nil {
		return core.Observation{}, fmt.Errorf("gym: reset: %w", err)
	}
	e.w = w
	e.episodeSeed = seed
	e.actions = e.actions[:0]
	e.stats = Stats{Length: w.Snapshot().Length, DeathCause: snake.DeathNone.String()}
	return w.Observation(), nil
}

// Step applies one action. Invalid actions leave the episode untouched.
// When the food cannot be respawned the step still counts and the error is
// returned next to the result.
func (e *SnakeEnv) Step(action int) (core.StepResult, error) {
	if e.closed {
		return core.StepResult{}, ErrClosed
	}
	if e.w == nil {
		return core.StepResult{}, ErrNotReset
	}

	if e.stats.Done && e.w.Alive() {
		// Truncated: hold the final frame like a finished episode.
		info := e.info()
		info.Truncated = true
		return core.StepResult{Observation: e.w.Observation(), Done: true, Info: info}, nil
	}

	wasDone := e.stats.Done
	res, err := e.w.Move(action)
	if err != nil && errors.Is(err, snake.ErrInvalidAction) {
		return core.StepResult{}, err
	}

	if !wasDone {
		e.actions = append(e.actions, action)
		e.stats.Steps = e.w.Steps()
		e.stats.TotalReward += res.Reward
		e.stats.FoodEaten = e.w.FoodEaten()
		e.stats.Length = len(res.Snake)
		e.stats.Done = res.Done
		e.stats.DeathCause = e.w.DeathCause().String()
	}

	out := core.StepResult{
		Observation: e.w.Observation(),
		Reward:      res.Reward,
		Done:        res.Done,
		Info:        e.info(),
	}
	if limit := e.cfg.Play.MaxSteps; limit > 0 && !res.Done && e.stats.Steps >= limit {
		out.Done = true
		out.Info.Truncated = true
		e.stats.Done = true
	}
	if err != nil {
		return out, fmt.Errorf("gym: step: %w", err)
	}
	return out, nil
}

// Info returns the auxiliary data for the current state.
func (e *SnakeEnv) Info() core.Info {
	if e.w == nil {
		return core.Info{}
	}
	return e.info()
}

func (e *SnakeEnv) info() core.Info {
	food, hasFood := e.w.Food()
	return core.Info{
		Snake:      e.w.SnakeCells(),
		Length:     e.stats.Length,
		Food:       food,
		HasFood:    hasFood,
		Steps:      e.w.Steps(),
		FoodEaten:  e.w.FoodEaten(),
		DeathCause: e.w.DeathCause().String(),
	}
}

// Observation returns the current observation.
func (e *SnakeEnv) Observation() (core.Observation, error) {
	if e.w == nil {
		return core.Observation{}, ErrNotReset
	}
	return e.w.Observation(), nil
}

// Stats returns the statistics of the current episode.
func (e *SnakeEnv) Stats() Stats { return e.stats }

// EpisodeSeed returns the seed of the current episode's world.
func (e *SnakeEnv) EpisodeSeed() int64 { return e.episodeSeed }

// Actions returns the actions applied in the current episode.
func (e *SnakeEnv) Actions() []int {
	return append([]int(nil), e.actions...)
}

// Snapshot returns the engine snapshot of the current episode.
func (e *SnakeEnv) Snapshot() (snake.Snapshot, error) {
	if e.w == nil {
		return snake.Snapshot{}, ErrNotReset
	}
	return e.w.Snapshot(), nil
}

// Render presents the current frame. Human mode writes a colored text frame
// to the output and returns nil; rgb_array returns the zoomed image.
func (e *SnakeEnv) Render(mode registry.RenderMode) (image.Image, error) {
	if e.closed {
		return nil, ErrClosed
	}
	if e.w == nil {
		return nil, ErrNotReset
	}

	obs := e.w.Observation()
	switch mode {
	case registry.RenderRGBArray:
		return Colorize(obs, e.cfg.Render.Zoom), nil
	case registry.RenderHuman:
		w, h := FrameSize(obs)
		if e.screen == nil {
			e.screen = core.NewScreen(w, h)
		} else {
			e.screen.Resize(w, h)
		}
		DrawFrame(e.screen, obs, e.stats, "")
		if _, err := fmt.Fprintf(e.out, "\x1b[H\x1b[2J%s\n", term.RenderScreen(e.screen)); err != nil {
			return nil, fmt.Errorf("gym: render: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("gym: unsupported render mode %q", mode)
	}
}

// Close releases the display. Further calls fail with ErrClosed.
func (e *SnakeEnv) Close() error {
	e.closed = true
	e.screen = nil
	return nil
}
