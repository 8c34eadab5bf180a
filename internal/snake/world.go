// Package snake implements the deterministic single-agent snake simulation:
// the direction table, the snake body, the walled grid and the World that
// runs one step per action.
package snake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-env/internal/core"
)

// Rand is the random source used for spawning and food placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Rewards holds the scalar rewards returned by Move.
type Rewards struct {
	Dead float64
	Move float64
	Eat  float64
}

// Config describes one episode.
type Config struct {
	Rows        int
	Cols        int
	SnakeLength int

	// Custom mode uses the fixed spawn and food position below instead of
	// drawing them from the random source.
	Custom         bool
	StartPosition  core.Point
	StartDirection Direction
	FoodPosition   core.Point

	Rewards Rewards
}

// DefaultConfig returns a 15x15 world with a snake of length 3.
func DefaultConfig() Config {
	return Config{
		Rows:        15,
		Cols:        15,
		SnakeLength: 3,
		Rewards: Rewards{
			Dead: -10,
			Move: 0,
			Eat:  10,
		},
	}
}

// Validate checks that a snake of the configured length fits inside the walls.
func (c Config) Validate() error {
	if c.SnakeLength < 1 {
		return fmt.Errorf("%w: snake length %d", ErrInvalidSpawn, c.SnakeLength)
	}
	if c.Rows < 3 || c.Cols < 3 {
		return fmt.Errorf("%w: %dx%d has no interior", ErrGridTooSmall, c.Rows, c.Cols)
	}

	if !c.Custom {
		need := 2*c.SnakeLength + 2
		if c.Rows < need || c.Cols < need {
			return fmt.Errorf("%w: %dx%d needs at least %dx%d for length %d",
				ErrGridTooSmall, c.Rows, c.Cols, need, need, c.SnakeLength)
		}
		return nil
	}

	if !c.StartDirection.Valid() {
		return fmt.Errorf("%w: direction %d", ErrInvalidSpawn, c.StartDirection)
	}
	grid := NewGrid(c.Rows, c.Cols)
	dr, dc := c.StartDirection.Vector()
	p := c.StartPosition
	for i := 0; i < c.SnakeLength; i++ {
		if grid.IsWall(p) {
			return fmt.Errorf("%w: cell %v of the body is on the wall", ErrInvalidSpawn, p)
		}
		p = p.Add(-dr, -dc)
	}
	return nil
}

// DeathCause records why an episode ended.
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathWall
	DeathSelf
	DeathNoFood // Food could not be respawned
)

func (d DeathCause) String() string {
	switch d {
	case DeathWall:
		return "wall"
	case DeathSelf:
		return "self"
	case DeathNoFood:
		return "no_food"
	default:
		return "none"
	}
}

// MoveResult is the outcome of one Move call.
type MoveResult struct {
	Reward float64
	Done   bool
	Snake  []core.Point // head first
}

// World owns the grid, the snake and the food for one episode.
// It is not safe for concurrent use.
type World struct {
	cfg   Config
	rng   Rand
	grid  *Grid
	snake *Snake

	food      core.Point
	hasFood   bool
	available []core.Point // derived from grid and snake on every placement

	steps     int
	foodEaten int
	cause     DeathCause
}

// NewWorld builds a world, spawns the snake and places the first food.
// A nil rng falls back to a source seeded with 0.
func NewWorld(cfg Config, rng Rand) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	w := &World{
		cfg:  cfg,
		rng:  rng,
		grid: NewGrid(cfg.Rows, cfg.Cols),
	}
	w.snake = w.spawnSnake()

	var err error
	if cfg.Custom {
		food := cfg.FoodPosition
		err = w.PlaceFood(&food)
	} else {
		err = w.PlaceFood(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("initial food: %w", err)
	}
	return w, nil
}

func (w *World) spawnSnake() *Snake {
	capacity := w.grid.Interior() + 1
	if w.cfg.Custom {
		return NewSnake(w.cfg.StartPosition, w.cfg.StartDirection, w.cfg.SnakeLength, capacity)
	}

	// Head range keeps the backward-laid body off the walls for any direction.
	l := w.cfg.SnakeLength
	row := 1 + l + w.rng.Intn(w.cfg.Rows-1-2*l)
	col := 1 + l + w.rng.Intn(w.cfg.Cols-1-2*l)
	dir := Direction(w.rng.Intn(NumDirections))
	return NewSnake(core.Pt(row, col), dir, l, capacity)
}

// Move applies one action. Once the snake is dead every call returns the
// dead reward with done set and leaves the world untouched. A failed food
// respawn ends the episode: the step keeps its eat reward, reports done and
// returns ErrNoAvailableCell.
func (w *World) Move(action int) (MoveResult, error) {
	if !w.snake.Alive() {
		return MoveResult{Reward: w.cfg.Rewards.Dead, Done: true, Snake: w.snake.Cells()}, nil
	}
	if action < 0 || action >= NumDirections {
		return MoveResult{}, fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidAction, action, NumDirections-1)
	}

	w.steps++
	newHead, vacated := w.snake.Advance(Direction(action))

	switch {
	case w.grid.IsWall(newHead):
		w.die(DeathWall)
	case w.snake.SelfIntersecting():
		w.die(DeathSelf)
	}

	var reward float64
	needFood := false
	if w.snake.Alive() {
		if w.hasFood && newHead == w.food {
			w.grid.clearFood(w.food)
			w.hasFood = false
			w.snake.Grow(vacated)
			w.foodEaten++
			needFood = true
			reward = w.cfg.Rewards.Eat
		} else {
			reward = w.cfg.Rewards.Move
		}
	} else {
		reward = w.cfg.Rewards.Dead
	}

	res := MoveResult{Reward: reward, Done: !w.snake.Alive()}
	if needFood {
		var err error
		if w.cfg.Custom {
			// Custom mode keeps requesting the last food cell, which the
			// head now covers, so the fallback chain decides.
			last := w.food
			err = w.PlaceFood(&last)
		} else {
			err = w.PlaceFood(nil)
		}
		if err != nil {
			// The episode cannot go on without food.
			res.Snake = w.snake.Cells()
			w.die(DeathNoFood)
			res.Done = true
			return res, fmt.Errorf("respawn food: %w", err)
		}
	}
	res.Snake = w.snake.Cells()
	return res, nil
}

func (w *World) die(cause DeathCause) {
	w.snake.Kill()
	w.cause = cause
}

// Observation renders the grid with the snake overlaid.
func (w *World) Observation() core.Observation {
	return w.grid.Render(w.snake)
}

// Alive reports whether the episode is still running.
func (w *World) Alive() bool {
	return w.snake.Alive()
}

// Direction returns the snake's current heading.
func (w *World) Direction() Direction {
	return w.snake.Direction()
}

// SnakeCells returns the snake cells, head first.
func (w *World) SnakeCells() []core.Point {
	return w.snake.Cells()
}

// Food returns the food cell and whether food is currently placed.
func (w *World) Food() (core.Point, bool) {
	return w.food, w.hasFood
}

// Available returns a copy of the cells that were free at the last placement.
func (w *World) Available() []core.Point {
	out := make([]core.Point, len(w.available))
	copy(out, w.available)
	return out
}

// Steps returns the number of accepted moves.
func (w *World) Steps() int {
	return w.steps
}

// FoodEaten returns how many food cells were consumed.
func (w *World) FoodEaten() int {
	return w.foodEaten
}

// DeathCause returns why the snake died, or DeathNone.
func (w *World) DeathCause() DeathCause {
	return w.cause
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// Grid exposes the static grid.
func (w *World) Grid() *Grid {
	return w.grid
}
