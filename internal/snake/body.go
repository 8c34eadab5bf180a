package snake

import "github.com/vovakirdan/snake-env/internal/core"

// body is a ring-buffer deque of snake cells, head first, with an occupancy
// count per cell. dups counts cells occupied more than once so that a
// self-intersection can be detected without scanning.
type body struct {
	buf      []core.Point
	head     int // index of the head in buf
	n        int
	occupied map[core.Point]int
	dups     int
}

func newBody(capacity int) *body {
	if capacity < 1 {
		capacity = 1
	}
	return &body{
		buf:      make([]core.Point, capacity),
		occupied: make(map[core.Point]int, capacity),
	}
}

// Len returns the number of cells.
func (b *body) Len() int {
	return b.n
}

// At returns the i-th cell counted from the head.
func (b *body) At(i int) core.Point {
	return b.buf[(b.head+i)%len(b.buf)]
}

// Head returns the first cell.
func (b *body) Head() core.Point {
	return b.At(0)
}

// Tail returns the last cell.
func (b *body) Tail() core.Point {
	return b.At(b.n - 1)
}

// PushFront prepends p.
func (b *body) PushFront(p core.Point) {
	b.ensure()
	b.head = (b.head - 1 + len(b.buf)) % len(b.buf)
	b.buf[b.head] = p
	b.n++
	b.mark(p)
}

// PushBack appends p.
func (b *body) PushBack(p core.Point) {
	b.ensure()
	b.buf[(b.head+b.n)%len(b.buf)] = p
	b.n++
	b.mark(p)
}

// PopBack removes and returns the last cell. The body must not be empty.
func (b *body) PopBack() core.Point {
	p := b.Tail()
	b.n--
	b.unmark(p)
	return p
}

// Contains reports whether p is occupied.
func (b *body) Contains(p core.Point) bool {
	return b.occupied[p] > 0
}

// HasDuplicates reports whether any cell is occupied twice.
func (b *body) HasDuplicates() bool {
	return b.dups > 0
}

// Cells returns a copy of the cells, head first.
func (b *body) Cells() []core.Point {
	cells := make([]core.Point, b.n)
	for i := range cells {
		cells[i] = b.At(i)
	}
	return cells
}

func (b *body) mark(p core.Point) {
	b.occupied[p]++
	if b.occupied[p] == 2 {
		b.dups++
	}
}

func (b *body) unmark(p core.Point) {
	switch b.occupied[p] {
	case 1:
		delete(b.occupied, p)
	case 2:
		b.dups--
		b.occupied[p]--
	default:
		b.occupied[p]--
	}
}

// ensure doubles the buffer when it is full, unrolling it so the head
// is at index 0 again.
func (b *body) ensure() {
	if b.n < len(b.buf) {
		return
	}
	grown := make([]core.Point, len(b.buf)*2)
	for i := 0; i < b.n; i++ {
		grown[i] = b.At(i)
	}
	b.buf = grown
	b.head = 0
}
