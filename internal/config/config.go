// Package config provides YAML-based environment configuration loading and
// size presets for the snake environment.
package config

import (
	"fmt"

	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/snake"
)

// SnakeConfig contains all configuration for the snake environment.
type SnakeConfig struct {
	Seed    int64        `yaml:"seed"` // 0 means pick one at startup
	Grid    GridConfig   `yaml:"grid"`
	Snake   SnakeParams  `yaml:"snake"`
	Spawn   SpawnConfig  `yaml:"spawn"`
	Rewards RewardConfig `yaml:"rewards"`
	Render  RenderConfig `yaml:"render"`
	Play    PlayConfig   `yaml:"play"`
}

// GridConfig defines the world dimensions, walls included.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// SnakeParams defines the snake at spawn.
type SnakeParams struct {
	Length int `yaml:"length"`
}

// SpawnConfig defines the custom (deterministic) spawn.
type SpawnConfig struct {
	Custom    bool        `yaml:"custom"`
	Position  PointConfig `yaml:"position"`
	Direction string      `yaml:"direction"` // up, right, down, left
	Food      PointConfig `yaml:"food"`
}

// PointConfig is a grid coordinate in YAML form.
type PointConfig struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// Point converts to core.Point.
func (p PointConfig) Point() core.Point {
	return core.Pt(p.Row, p.Col)
}

// RewardConfig defines the scalar rewards.
type RewardConfig struct {
	Dead float64 `yaml:"dead"`
	Move float64 `yaml:"move"`
	Eat  float64 `yaml:"eat"`
}

// RenderConfig defines the RGB renderer parameters.
type RenderConfig struct {
	Zoom int `yaml:"zoom"` // Pixels per cell edge
}

// PlayConfig defines interactive play parameters.
type PlayConfig struct {
	TickRate int `yaml:"tick_rate"` // Moves per second in the terminal
	MaxSteps int `yaml:"max_steps"` // Truncate episodes in batch runs, 0 = unlimited
}

// World converts the configuration into an engine configuration.
func (c SnakeConfig) World() (snake.Config, error) {
	wc := snake.Config{
		Rows:        c.Grid.Rows,
		Cols:        c.Grid.Cols,
		SnakeLength: c.Snake.Length,
		Custom:      c.Spawn.Custom,
		Rewards: snake.Rewards{
			Dead: c.Rewards.Dead,
			Move: c.Rewards.Move,
			Eat:  c.Rewards.Eat,
		},
	}
	if c.Spawn.Custom {
		dir, err := snake.ParseDirection(c.Spawn.Direction)
		if err != nil {
			return wc, fmt.Errorf("config: spawn: %w", err)
		}
		wc.StartPosition = c.Spawn.Position.Point()
		wc.StartDirection = dir
		wc.FoodPosition = c.Spawn.Food.Point()
	}
	return wc, nil
}

// Validate checks the configuration without building a world.
func (c SnakeConfig) Validate() error {
	wc, err := c.World()
	if err != nil {
		return err
	}
	if err := wc.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Render.Zoom < 1 {
		return fmt.Errorf("config: render zoom must be positive, got %d", c.Render.Zoom)
	}
	if c.Play.TickRate < 0 || c.Play.MaxSteps < 0 {
		return fmt.Errorf("config: play settings must not be negative")
	}
	return nil
}
