package engine

import (
	"math/rand"

	"github.com/vovakirdan/meteorblast/internal/core"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// fullBoard returns a w×h board of meteorites with the given cells left empty.
func fullBoard(w, h int, empty ...core.Point) Board {
	b := NewBoard(w, h)
	holes := make(map[core.Point]bool, len(empty))
	for _, p := range empty {
		holes[p] = true
	}
	for y := range h {
		for x := range w {
			if !holes[core.Pt(x, y)] {
				b.set(x, y, Meteorite)
			}
		}
	}
	return b
}

func basePiece(id FamilyID) Piece {
	f, ok := FamilyByID(id)
	if !ok {
		panic("unknown family " + string(id))
	}
	return f.Base()
}

func monomino(id string) Piece {
	return Piece{ID: id, Family: "X", Name: "Dot", Glyph: PieceGlyph, Color: core.ColorWhite, Shape: Shape{{1}}}
}
