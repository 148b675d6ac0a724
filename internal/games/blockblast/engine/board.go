package engine

import (
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/meteorblast/internal/core"
)

// Filler is the content of an occupied cell. Piece cells and meteorites use
// the same type; only their glyph and color differ.
type Filler struct {
	Glyph rune
	Color core.Color
}

// Meteorite is the obstacle filler placed by seeding and repopulation.
var Meteorite = Filler{Glyph: '▓', Color: core.ColorDarkGray}

// Board is a W×H grid of cells. Boards are copy-on-write: every operation
// that changes cells returns a new Board and leaves the receiver untouched.
type Board struct {
	W, H  int
	cells []Filler
	full  []bool
}

// NewBoard returns an empty board.
func NewBoard(w, h int) Board {
	w, h = max(w, 0), max(h, 0)
	return Board{
		W:     w,
		H:     h,
		cells: make([]Filler, w*h),
		full:  make([]bool, w*h),
	}
}

// InBounds reports whether (x, y) is on the board.
func (b Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Filled reports whether (x, y) is occupied. Out-of-bounds cells read as empty.
func (b Board) Filled(x, y int) bool {
	if !b.InBounds(x, y) {
		return false
	}
	return b.full[y*b.W+x]
}

// At returns the filler at (x, y) and whether the cell is occupied.
func (b Board) At(x, y int) (Filler, bool) {
	if !b.Filled(x, y) {
		return Filler{}, false
	}
	return b.cells[y*b.W+x], true
}

// FilledCount returns the number of occupied cells.
func (b Board) FilledCount() int {
	n := 0
	for _, f := range b.full {
		if f {
			n++
		}
	}
	return n
}

// Clone returns an independent copy.
func (b Board) Clone() Board {
	return Board{
		W:     b.W,
		H:     b.H,
		cells: append([]Filler(nil), b.cells...),
		full:  append([]bool(nil), b.full...),
	}
}

// Equal reports whether both boards have identical dimensions and contents.
func (b Board) Equal(other Board) bool {
	if b.W != other.W || b.H != other.H {
		return false
	}
	for i := range b.full {
		if b.full[i] != other.full[i] {
			return false
		}
		if b.full[i] && b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// set mutates in place; callers must own the board.
func (b Board) set(x, y int, f Filler) {
	i := y*b.W + x
	b.cells[i] = f
	b.full[i] = true
}

func (b Board) unset(x, y int) {
	i := y*b.W + x
	b.cells[i] = Filler{}
	b.full[i] = false
}

// WithCell returns a copy of b with (x, y) filled. Out-of-bounds writes are
// ignored.
func (b Board) WithCell(x, y int, f Filler) Board {
	out := b.Clone()
	if out.InBounds(x, y) {
		out.set(x, y, f)
	}
	return out
}

// String renders the board with '.' for empty cells and '#' for filled ones.
func (b Board) String() string {
	var sb strings.Builder
	for y := range b.H {
		for x := range b.W {
			if b.Filled(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y < b.H-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SeedObstacles fills floor(W×H×density) distinct random cells with
// meteorites. Colliding draws are rejected and resampled. Complete lines are
// not prevented.
func SeedObstacles(b Board, rng *rand.Rand, density float64) Board {
	out := b.Clone()
	count := int(math.Floor(float64(b.W*b.H) * density))
	count = min(count, len(out.full)-out.FilledCount())
	for placed := 0; placed < count; {
		x, y := rng.Intn(b.W), rng.Intn(b.H)
		if out.Filled(x, y) {
			continue
		}
		out.set(x, y, Meteorite)
		placed++
	}
	return out
}

// Repopulate drops meteorites back onto a board after a clear. For every
// i < len(lines.Rows) it makes floor(W×density) random attempts in row i, and
// for every i < len(lines.Cols) floor(H×density) attempts in column i. Attempts
// on occupied cells are skipped, not retried. The cleared indices only decide
// how many rows and columns are visited.
func Repopulate(b Board, rng *rand.Rand, lines Lines, density float64) Board {
	if lines.Empty() || b.W == 0 || b.H == 0 {
		return b
	}
	out := b.Clone()

	perRow := int(math.Floor(float64(b.W) * density))
	for y := 0; y < len(lines.Rows) && y < b.H; y++ {
		for range perRow {
			x := rng.Intn(b.W)
			if !out.Filled(x, y) {
				out.set(x, y, Meteorite)
			}
		}
	}

	perCol := int(math.Floor(float64(b.H) * density))
	for x := 0; x < len(lines.Cols) && x < b.W; x++ {
		for range perCol {
			y := rng.Intn(b.H)
			if !out.Filled(x, y) {
				out.set(x, y, Meteorite)
			}
		}
	}
	return out
}
