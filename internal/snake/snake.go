package snake

import "github.com/vovakirdan/snake-env/internal/core"

// Snake is the ordered body of the agent plus its heading.
type Snake struct {
	body      *body
	direction Direction
	alive     bool
}

// NewSnake places a snake with its head at head, facing dir. The remaining
// length-1 cells are laid out by walking backward against dir.
// capacity is a size hint for the body buffer.
func NewSnake(head core.Point, dir Direction, length, capacity int) *Snake {
	if length < 1 {
		length = 1
	}
	s := &Snake{
		body:      newBody(max(capacity, length+1)),
		direction: dir,
		alive:     true,
	}
	dr, dc := dir.Vector()
	p := head
	for i := 0; i < length; i++ {
		s.body.PushBack(p)
		p = p.Add(-dr, -dc)
	}
	return s
}

// newSnakeFromCells builds a snake from explicit cells, head first.
// Used to stage positions that normal play cannot reach.
func newSnakeFromCells(cells []core.Point, dir Direction) *Snake {
	s := &Snake{
		body:      newBody(len(cells) + 1),
		direction: dir,
		alive:     true,
	}
	for _, p := range cells {
		s.body.PushBack(p)
	}
	return s
}

// Advance moves the snake one cell. The requested direction is adopted
// unless it reverses the current one. The tail is dropped before the new
// head is added, so the head may enter the cell the tail just left.
// It returns the new head and the vacated tail cell; growth is up to the caller.
func (s *Snake) Advance(requested Direction) (newHead, vacated core.Point) {
	if requested != s.direction && !IsReversal(s.direction, requested) {
		s.direction = requested
	}

	dr, dc := s.direction.Vector()
	newHead = s.body.Head().Add(dr, dc)
	vacated = s.body.PopBack()
	s.body.PushFront(newHead)
	return newHead, vacated
}

// Grow re-appends a previously vacated tail cell.
func (s *Snake) Grow(tail core.Point) {
	s.body.PushBack(tail)
}

// Kill marks the snake dead. There is no way back.
func (s *Snake) Kill() {
	s.alive = false
}

// Alive reports whether the snake is alive.
func (s *Snake) Alive() bool {
	return s.alive
}

// Direction returns the current heading.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Head returns the head cell.
func (s *Snake) Head() core.Point {
	return s.body.Head()
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return s.body.Len()
}

// Occupies reports whether p is part of the body.
func (s *Snake) Occupies(p core.Point) bool {
	return s.body.Contains(p)
}

// SelfIntersecting reports whether two body cells share a coordinate.
func (s *Snake) SelfIntersecting() bool {
	return s.body.HasDuplicates()
}

// Cells returns a copy of the body cells, head first.
func (s *Snake) Cells() []core.Point {
	return s.body.Cells()
}
