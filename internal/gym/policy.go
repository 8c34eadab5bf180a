package gym

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/snake"
)

// Policy picks the next action from the current observation and info.
type Policy interface {
	Act(obs core.Observation, info core.Info) int
}

// PolicyNames lists the built-in policies.
func PolicyNames() []string {
	return []string{"random", "straight"}
}

// NewPolicy returns a built-in policy by name.
func NewPolicy(name string, seed int64) (Policy, error) {
	switch name {
	case "random":
		return &RandomPolicy{rng: rand.New(rand.NewSource(seed))}, nil
	case "straight":
		return StraightPolicy{}, nil
	}
	return nil, fmt.Errorf("gym: unknown policy %q (want one of %v)", name, PolicyNames())
}

// RandomPolicy picks uniformly among the four directions.
type RandomPolicy struct {
	rng *rand.Rand
}

// Act implements Policy.
func (p *RandomPolicy) Act(core.Observation, core.Info) int {
	return p.rng.Intn(snake.NumDirections)
}

// StraightPolicy keeps the current heading, read from the head and the
// cell behind it. A single-cell snake goes right.
type StraightPolicy struct{}

// Act implements Policy.
func (StraightPolicy) Act(_ core.Observation, info core.Info) int {
	if len(info.Snake) < 2 {
		return int(snake.DirRight)
	}
	head, neck := info.Snake[0], info.Snake[1]
	for d := range snake.Direction(snake.NumDirections) {
		dr, dc := d.Vector()
		if neck.Add(dr, dc) == head {
			return int(d)
		}
	}
	return int(snake.DirRight)
}
