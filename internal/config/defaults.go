package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake environment configuration.
// It mirrors defaults/snake.yaml and is used if the embedded file is unreadable.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: GridConfig{
			Rows: 15,
			Cols: 15,
		},
		Snake: SnakeParams{
			Length: 3,
		},
		Spawn: SpawnConfig{
			Custom:    false,
			Position:  PointConfig{Row: 7, Col: 7},
			Direction: "right",
			Food:      PointConfig{Row: 3, Col: 3},
		},
		Rewards: RewardConfig{
			Dead: -10,
			Move: 0,
			Eat:  10,
		},
		Render: RenderConfig{
			Zoom: 20,
		},
		Play: PlayConfig{
			TickRate: 8,
		},
	}
}
