package snake

import "errors"

var (
	// ErrInvalidAction is returned when an action index is outside [0, 3].
	ErrInvalidAction = errors.New("snake: invalid action")

	// ErrNoAvailableCell is returned when food cannot be placed anywhere.
	// The episode cannot continue with a consistent food state.
	ErrNoAvailableCell = errors.New("snake: no available cell for food")

	// ErrGridTooSmall is returned when a randomly spawned snake cannot fit
	// inside the walls.
	ErrGridTooSmall = errors.New("snake: grid too small")

	// ErrInvalidSpawn is returned when a custom spawn puts the snake on or
	// outside the wall ring.
	ErrInvalidSpawn = errors.New("snake: invalid spawn")
)
