package snake

import "testing"

func TestDirectionVectors(t *testing.T) {
	tests := []struct {
		dir    Direction
		dr, dc int
	}{
		{DirUp, -1, 0},
		{DirRight, 0, 1},
		{DirDown, 1, 0},
		{DirLeft, 0, -1},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			dr, dc := tc.dir.Vector()
			if dr != tc.dr || dc != tc.dc {
				t.Errorf("Vector() = (%d, %d), expected (%d, %d)", dr, dc, tc.dr, tc.dc)
			}
		})
	}
}

func TestOppositeVectorsCancel(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		dr, dc := d.Vector()
		or, oc := d.Opposite().Vector()
		if dr+or != 0 || dc+oc != 0 {
			t.Errorf("%v and %v vectors should be additive inverses", d, d.Opposite())
		}
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite should be an involution for %v", d)
		}
	}
}

func TestIsReversal(t *testing.T) {
	tests := []struct {
		current, requested Direction
		expected           bool
	}{
		{DirUp, DirDown, true},
		{DirDown, DirUp, true},
		{DirLeft, DirRight, true},
		{DirRight, DirLeft, true},
		{DirUp, DirUp, false},
		{DirUp, DirLeft, false},
		{DirUp, DirRight, false},
		{DirRight, DirDown, false},
	}

	for _, tc := range tests {
		if got := IsReversal(tc.current, tc.requested); got != tc.expected {
			t.Errorf("IsReversal(%v, %v) = %v, expected %v", tc.current, tc.requested, got, tc.expected)
		}
	}
}

func TestDirectionValid(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		if !d.Valid() {
			t.Errorf("%v should be valid", d)
		}
	}
	if Direction(-1).Valid() || Direction(4).Valid() {
		t.Error("Out of range directions should be invalid")
	}
}

func TestParseDirection(t *testing.T) {
	for d := Direction(0); d < NumDirections; d++ {
		got, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d.String(), err)
		}
		if got != d {
			t.Errorf("ParseDirection(%q) = %v, expected %v", d.String(), got, d)
		}
	}

	if got, err := ParseDirection(" Left "); err != nil || got != DirLeft {
		t.Errorf("ParseDirection should ignore case and spaces, got %v, %v", got, err)
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}
