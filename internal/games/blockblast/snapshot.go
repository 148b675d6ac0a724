package blockblast

import (
	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast/engine"
)

// Snapshot captures the complete game state for determinism testing.
type Snapshot struct {
	Mode     Mode
	Cursor   core.Point
	Slot     int
	Picture  bool
	TooSmall bool
	Session  engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:     g.mode,
		Cursor:   g.cursor,
		Slot:     g.slot,
		Picture:  g.picture,
		TooSmall: g.tooSmall,
	}
	if g.session != nil {
		snap.Session = g.session.Snapshot()
	}
	return snap
}
