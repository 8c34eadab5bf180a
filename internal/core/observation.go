package core

// CellCode is the integer code of one observation cell. The values are part
// of the interchange format consumed by renderers and agents.
type CellCode uint8

const (
	CellEmpty     CellCode = 0
	CellFood      CellCode = 64
	CellSnakeBody CellCode = 100
	CellSnakeHead CellCode = CellSnakeBody + 1
	CellWall      CellCode = 255
)

// String returns a short name for the cell code.
func (c CellCode) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFood:
		return "food"
	case CellSnakeBody:
		return "body"
	case CellSnakeHead:
		return "head"
	case CellWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Observation is a rows x cols matrix of cell codes in row-major order.
type Observation struct {
	Rows  int
	Cols  int
	Cells []CellCode
}

// NewObservation allocates an observation filled with CellEmpty.
func NewObservation(rows, cols int) Observation {
	return Observation{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]CellCode, rows*cols),
	}
}

// InBounds reports whether p lies inside the matrix.
func (o Observation) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < o.Rows && p.Col >= 0 && p.Col < o.Cols
}

// At returns the code at p, or CellWall outside the matrix.
func (o Observation) At(p Point) CellCode {
	if !o.InBounds(p) {
		return CellWall
	}
	return o.Cells[p.Row*o.Cols+p.Col]
}

// Set writes c at p. Out-of-bounds points are ignored.
func (o Observation) Set(p Point, c CellCode) {
	if o.InBounds(p) {
		o.Cells[p.Row*o.Cols+p.Col] = c
	}
}

// Clone returns a deep copy.
func (o Observation) Clone() Observation {
	cells := make([]CellCode, len(o.Cells))
	copy(cells, o.Cells)
	return Observation{Rows: o.Rows, Cols: o.Cols, Cells: cells}
}

// Count returns how many cells hold c.
func (o Observation) Count(c CellCode) int {
	n := 0
	for _, v := range o.Cells {
		if v == c {
			n++
		}
	}
	return n
}

// Find returns every point holding c, row by row.
func (o Observation) Find(c CellCode) []Point {
	var pts []Point
	for i, v := range o.Cells {
		if v == c {
			pts = append(pts, Pt(i/o.Cols, i%o.Cols))
		}
	}
	return pts
}

// Matrix returns the observation as nested rows, the layout used by JSON clients.
func (o Observation) Matrix() [][]CellCode {
	m := make([][]CellCode, o.Rows)
	for r := range m {
		m[r] = make([]CellCode, o.Cols)
		copy(m[r], o.Cells[r*o.Cols:(r+1)*o.Cols])
	}
	return m
}

// Equal returns true if both observations have the same shape and contents.
func (o Observation) Equal(other Observation) bool {
	if o.Rows != other.Rows || o.Cols != other.Cols || len(o.Cells) != len(other.Cells) {
		return false
	}
	for i, v := range o.Cells {
		if v != other.Cells[i] {
			return false
		}
	}
	return true
}
