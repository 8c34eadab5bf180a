package snake

import (
	"fmt"
	"strings"
)

// Direction is one of the four movement directions. The values form a cycle
// in which the direction two steps away is the opposite one.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// NumDirections is the size of the action space.
const NumDirections = 4

// vectors holds the (drow, dcol) displacement of each direction.
var vectors = [NumDirections][2]int{
	DirUp:    {-1, 0},
	DirRight: {0, 1},
	DirDown:  {1, 0},
	DirLeft:  {0, -1},
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// Vector returns the unit displacement for d. d must be valid.
func (d Direction) Vector() (dr, dc int) {
	v := vectors[d]
	return v[0], v[1]
}

// Opposite returns the direction two steps away in the cycle.
func (d Direction) Opposite() Direction {
	return (d + 2) % NumDirections
}

// IsReversal reports whether requested would turn the snake back onto its
// own neck. Repeating the current direction is not a reversal.
func IsReversal(current, requested Direction) bool {
	return requested != current && requested == current.Opposite()
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name ("up", "right", "down", "left") to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return DirUp, nil
	case "right":
		return DirRight, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	}
	return 0, fmt.Errorf("snake: unknown direction %q", s)
}
