package snake

import (
	"testing"

	"github.com/vovakirdan/snake-env/internal/core"
)

func TestNewGridWalls(t *testing.T) {
	g := NewGrid(6, 8)

	for r := 0; r < 6; r++ {
		for c := 0; c < 8; c++ {
			p := core.Pt(r, c)
			onRing := r == 0 || r == 5 || c == 0 || c == 7
			if onRing && g.At(p) != core.CellWall {
				t.Errorf("Expected wall at %v, got %v", p, g.At(p))
			}
			if !onRing && g.At(p) != core.CellEmpty {
				t.Errorf("Expected empty at %v, got %v", p, g.At(p))
			}
			if g.IsWall(p) != onRing {
				t.Errorf("IsWall(%v) = %v, expected %v", p, g.IsWall(p), onRing)
			}
		}
	}

	if g.Interior() != 4*6 {
		t.Errorf("Interior() = %d, expected 24", g.Interior())
	}
}

func TestGridRenderOverlay(t *testing.T) {
	g := NewGrid(10, 10)
	s := NewSnake(core.Pt(5, 5), DirRight, 3, 0)

	obs := g.Render(s)
	if obs.At(core.Pt(5, 5)) != core.CellSnakeHead {
		t.Errorf("Head should render as head, got %v", obs.At(core.Pt(5, 5)))
	}
	for _, p := range []core.Point{core.Pt(5, 4), core.Pt(5, 3)} {
		if obs.At(p) != core.CellSnakeBody {
			t.Errorf("Body cell %v should render as body, got %v", p, obs.At(p))
		}
	}
	if obs.Count(core.CellSnakeHead) != 1 {
		t.Errorf("Exactly one head expected, got %d", obs.Count(core.CellSnakeHead))
	}

	// Rendering must not modify the static grid
	if g.At(core.Pt(5, 5)) != core.CellEmpty {
		t.Error("Render should work on a copy")
	}
}

func TestGridRenderDeadSnake(t *testing.T) {
	g := NewGrid(10, 10)
	s := NewSnake(core.Pt(5, 5), DirRight, 3, 0)
	s.Kill()

	obs := g.Render(s)
	if obs.Count(core.CellSnakeBody)+obs.Count(core.CellSnakeHead) != 0 {
		t.Error("Dead snake should not be overlaid")
	}
}
