package gym

import (
	"testing"

	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/snake"
)

func TestStraightPolicy(t *testing.T) {
	tests := []struct {
		name  string
		snake []core.Point
		want  snake.Direction
	}{
		{"right", []core.Point{core.Pt(3, 4), core.Pt(3, 3)}, snake.DirRight},
		{"up", []core.Point{core.Pt(2, 3), core.Pt(3, 3)}, snake.DirUp},
		{"down", []core.Point{core.Pt(4, 3), core.Pt(3, 3), core.Pt(2, 3)}, snake.DirDown},
		{"left", []core.Point{core.Pt(3, 2), core.Pt(3, 3)}, snake.DirLeft},
		{"single cell", []core.Point{core.Pt(3, 3)}, snake.DirRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StraightPolicy{}.Act(core.Observation{}, core.Info{Snake: tt.snake})
			if got != int(tt.want) {
				t.Errorf("Act = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRandomPolicyRange(t *testing.T) {
	p, err := NewPolicy("random", 9)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool)
	for range 200 {
		a := p.Act(core.Observation{}, core.Info{})
		if a < 0 || a >= snake.NumDirections {
			t.Fatalf("action %d out of range", a)
		}
		seen[a] = true
	}
	if len(seen) != snake.NumDirections {
		t.Errorf("random policy used %d of 4 actions", len(seen))
	}
}

func TestUnknownPolicy(t *testing.T) {
	if _, err := NewPolicy("greedy", 0); err == nil {
		t.Error("expected error")
	}
}

func TestActionIndex(t *testing.T) {
	tests := []struct {
		in   core.Action
		want int
		ok   bool
	}{
		{core.ActionUp, 0, true},
		{core.ActionRight, 1, true},
		{core.ActionDown, 2, true},
		{core.ActionLeft, 3, true},
		{core.ActionPause, 0, false},
	}
	for _, tt := range tests {
		got, ok := ActionIndex(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ActionIndex(%v) = %d, %v", tt.in, got, ok)
		}
	}
}
