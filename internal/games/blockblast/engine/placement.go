package engine

import "github.com/vovakirdan/meteorblast/internal/core"

// CanPlace reports whether p fits on b with its top-left corner at (x, y):
// every filled shape cell must land in bounds on an empty cell.
func CanPlace(b Board, p Piece, x, y int) bool {
	for py, row := range p.Shape {
		for px, v := range row {
			if v == 0 {
				continue
			}
			bx, by := x+px, y+py
			if !b.InBounds(bx, by) || b.Filled(bx, by) {
				return false
			}
		}
	}
	return true
}

// Place stamps p onto a copy of b at origin (x, y). It does not validate;
// callers check CanPlace first. Out-of-bounds cells are dropped.
func Place(b Board, p Piece, x, y int) Board {
	out := b.Clone()
	fill := p.Filler()
	for _, c := range p.Shape.Cells() {
		bx, by := x+c.X, y+c.Y
		if out.InBounds(bx, by) {
			out.set(bx, by, fill)
		}
	}
	return out
}

// ResolveOrigin converts a cursor cell into a placement origin using the
// piece's anchor. It reports false when the origin would be negative or the
// piece does not fit there; no nearby cell is tried.
func ResolveOrigin(b Board, p Piece, cx, cy int) (core.Point, bool) {
	origin := core.Pt(cx, cy).Sub(AnchorPoint(p))
	if origin.X < 0 || origin.Y < 0 {
		return core.Point{}, false
	}
	if !CanPlace(b, p, origin.X, origin.Y) {
		return core.Point{}, false
	}
	return origin, true
}

// HasValidMove reports whether any piece in hand fits anywhere on b.
func HasValidMove(b Board, hand []Piece) bool {
	for _, p := range hand {
		for y := range b.H {
			for x := range b.W {
				if CanPlace(b, p, x, y) {
					return true
				}
			}
		}
	}
	return false
}
