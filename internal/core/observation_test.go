package core

import "testing"

func TestObservationAtSet(t *testing.T) {
	o := NewObservation(4, 6)

	o.Set(Pt(2, 3), CellFood)
	if o.At(Pt(2, 3)) != CellFood {
		t.Errorf("At(2,3) = %v, expected food", o.At(Pt(2, 3)))
	}
	if o.Cells[2*6+3] != CellFood {
		t.Error("Cells should be row-major")
	}

	// Out of bounds reads as wall and writes are ignored
	o.Set(Pt(-1, 0), CellFood)
	if o.At(Pt(-1, 0)) != CellWall {
		t.Error("Out of bounds At should return wall")
	}
	if o.At(Pt(4, 0)) != CellWall {
		t.Error("Out of bounds At should return wall")
	}
}

func TestObservationCloneIsDeep(t *testing.T) {
	o := NewObservation(3, 3)
	c := o.Clone()
	c.Set(Pt(1, 1), CellSnakeHead)

	if o.At(Pt(1, 1)) != CellEmpty {
		t.Error("Clone should not share cells with the original")
	}
	if o.Equal(c) {
		t.Error("Equal should detect a differing cell")
	}
	c.Set(Pt(1, 1), CellEmpty)
	if !o.Equal(c) {
		t.Error("Equal should hold after restoring the cell")
	}
}

func TestObservationCountFindMatrix(t *testing.T) {
	o := NewObservation(3, 4)
	o.Set(Pt(0, 1), CellWall)
	o.Set(Pt(2, 3), CellWall)

	if o.Count(CellWall) != 2 {
		t.Errorf("Count(wall) = %d, expected 2", o.Count(CellWall))
	}
	pts := o.Find(CellWall)
	if len(pts) != 2 || pts[0] != Pt(0, 1) || pts[1] != Pt(2, 3) {
		t.Errorf("Find(wall) = %v, expected [(0,1) (2,3)]", pts)
	}

	m := o.Matrix()
	if len(m) != 3 || len(m[0]) != 4 {
		t.Fatalf("Matrix shape = %dx%d, expected 3x4", len(m), len(m[0]))
	}
	if m[2][3] != CellWall {
		t.Error("Matrix should mirror the cells")
	}
}

func TestCellCodeValues(t *testing.T) {
	if CellSnakeHead != CellSnakeBody+1 {
		t.Error("Head code must be body code + 1")
	}
	if CellWall != 255 || CellFood != 64 || CellEmpty != 0 {
		t.Error("Interchange codes changed")
	}
}
