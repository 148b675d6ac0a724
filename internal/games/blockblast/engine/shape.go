package engine

import "github.com/vovakirdan/meteorblast/internal/core"

// Shape is a rectangular occupancy matrix indexed [row][col]; non-zero
// entries are filled.
type Shape [][]uint8

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Filled reports whether local cell (x, y) is part of the shape.
func (s Shape) Filled(x, y int) bool {
	if y < 0 || y >= len(s) || x < 0 || x >= len(s[y]) {
		return false
	}
	return s[y][x] != 0
}

// Cells returns the filled local cells in row-major order.
func (s Shape) Cells() []core.Point {
	var cells []core.Point
	for y, row := range s {
		for x, v := range row {
			if v != 0 {
				cells = append(cells, core.Pt(x, y))
			}
		}
	}
	return cells
}

// Clone returns a deep copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = append([]uint8(nil), row...)
	}
	return out
}

// Equal reports whether both shapes have the same dimensions and occupancy.
func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if (s[y][x] != 0) != (other[y][x] != 0) {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned clockwise: out[c][r] = in[H-1-r][c].
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for c := range w {
		out[c] = make([]uint8, h)
		for r := range h {
			out[c][r] = s[h-1-r][c]
		}
	}
	return out
}

// RotateCounterClockwise is the inverse of Rotate: out[c][r] = in[r][W-1-c].
func (s Shape) RotateCounterClockwise() Shape {
	h, w := s.Height(), s.Width()
	out := make(Shape, w)
	for c := range w {
		out[c] = make([]uint8, h)
		for r := range h {
			out[c][r] = s[r][w-1-c]
		}
	}
	return out
}
