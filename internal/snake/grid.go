package snake

import "github.com/vovakirdan/snake-env/internal/core"

// Grid is the static part of the world: walls on the outer ring plus the
// food cell. The snake is overlaid only when rendering.
type Grid struct {
	cells core.Observation
}

// NewGrid allocates an empty rows x cols grid and writes the wall ring.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{cells: core.NewObservation(rows, cols)}
	for c := 0; c < cols; c++ {
		g.cells.Set(core.Pt(0, c), core.CellWall)
		g.cells.Set(core.Pt(rows-1, c), core.CellWall)
	}
	for r := 0; r < rows; r++ {
		g.cells.Set(core.Pt(r, 0), core.CellWall)
		g.cells.Set(core.Pt(r, cols-1), core.CellWall)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.cells.Rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cells.Cols
}

// At returns the static cell code at p.
func (g *Grid) At(p core.Point) core.CellCode {
	return g.cells.At(p)
}

// IsWall reports whether p is on the outer ring or beyond it.
func (g *Grid) IsWall(p core.Point) bool {
	return p.Row <= 0 || p.Row >= g.Rows()-1 || p.Col <= 0 || p.Col >= g.Cols()-1
}

// Interior returns the number of non-wall cells.
func (g *Grid) Interior() int {
	return max(g.Rows()-2, 0) * max(g.Cols()-2, 0)
}

func (g *Grid) setFood(p core.Point) {
	g.cells.Set(p, core.CellFood)
}

func (g *Grid) clearFood(p core.Point) {
	if g.cells.At(p) == core.CellFood {
		g.cells.Set(p, core.CellEmpty)
	}
}

// Render returns a copy of the grid with the snake overlaid: body cells as
// CellSnakeBody and the head as CellSnakeHead. A dead snake is not drawn.
func (g *Grid) Render(s *Snake) core.Observation {
	obs := g.cells.Clone()
	if s == nil || !s.Alive() {
		return obs
	}
	for i := 1; i < s.body.Len(); i++ {
		obs.Set(s.body.At(i), core.CellSnakeBody)
	}
	obs.Set(s.Head(), core.CellSnakeHead)
	return obs
}
