package snake

import "github.com/vovakirdan/snake-env/internal/core"

// Snapshot captures the world state for determinism testing and replay checks.
type Snapshot struct {
	Steps     int
	Length    int
	Head      core.Point
	Dir       Direction
	Food      core.Point
	HasFood   bool
	FoodEaten int
	Alive     bool
	Cause     DeathCause
}

// Snapshot returns the current world snapshot.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Steps:     w.steps,
		Length:    w.snake.Len(),
		Head:      w.snake.Head(),
		Dir:       w.snake.Direction(),
		Food:      w.food,
		HasFood:   w.hasFood,
		FoodEaten: w.foodEaten,
		Alive:     w.snake.Alive(),
		Cause:     w.cause,
	}
}
