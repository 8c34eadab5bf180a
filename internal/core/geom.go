// Package core provides the pure value types shared by the engine, the
// environment wrappers and the platform layers. It has no external
// dependencies so the simulation stays testable on its own.
package core

import "fmt"

// Point is a grid coordinate. Row grows downward, Col grows to the right.
type Point struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Pt is a convenience constructor for Point.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Add returns the point offset by (dr, dc).
func (p Point) Add(dr, dc int) Point {
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Adjacent reports whether q is one orthogonal step away from p.
func (p Point) Adjacent(q Point) bool {
	return Abs(p.Row-q.Row)+Abs(p.Col-q.Col) == 1
}

// Rect represents an axis-aligned box on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
