package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-env/internal/core"
)

// PlaceFood puts a new food cell on the grid.
//
// The available cells are recomputed first: every non-wall cell the snake
// does not occupy, in row-major order. With requested == nil one of them is
// chosen with the world's random source. Otherwise the requested cell is
// used if available, then (row-1, col), then (row-1, col+1).
func (w *World) PlaceFood(requested *core.Point) error {
	w.refreshAvailable()
	if len(w.available) == 0 {
		return ErrNoAvailableCell
	}

	var chosen int
	if requested == nil {
		chosen = w.rng.Intn(len(w.available))
	} else {
		candidates := []core.Point{
			*requested,
			requested.Add(-1, 0),
			requested.Add(-1, 1),
		}
		chosen = -1
		for _, c := range candidates {
			if i := w.indexAvailable(c); i >= 0 {
				chosen = i
				break
			}
		}
		if chosen < 0 {
			return fmt.Errorf("%w: %v and its fallbacks are occupied", ErrNoAvailableCell, *requested)
		}
	}

	w.food = w.available[chosen]
	w.hasFood = true
	w.grid.setFood(w.food)
	w.available = append(w.available[:chosen], w.available[chosen+1:]...)
	return nil
}

func (w *World) refreshAvailable() {
	w.available = w.available[:0]
	for r := 1; r < w.grid.Rows()-1; r++ {
		for c := 1; c < w.grid.Cols()-1; c++ {
			p := core.Pt(r, c)
			if w.snake.Alive() && w.snake.Occupies(p) {
				continue
			}
			if w.grid.At(p) != core.CellEmpty {
				continue
			}
			w.available = append(w.available, p)
		}
	}
}

// indexAvailable returns the index of p in the available list, or -1.
// The list is row-major so the position can be computed by binary search.
func (w *World) indexAvailable(p core.Point) int {
	if w.grid.IsWall(p) {
		return -1
	}
	lo, hi := 0, len(w.available)
	for lo < hi {
		mid := (lo + hi) / 2
		m := w.available[mid]
		if m.Row < p.Row || (m.Row == p.Row && m.Col < p.Col) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(w.available) && w.available[lo] == p {
		return lo
	}
	return -1
}
