package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/meteorblast/internal/core"
)

// quietOptions disables obstacles so tests control the board completely.
func quietOptions() Options {
	opts := DefaultOptions()
	opts.Obstacles = false
	opts.Repopulate = false
	return opts
}

// rowZeroSession returns a playing session whose row 0 is filled from
// column 4 on and whose first hand slot holds a horizontal I with ID "i".
func rowZeroSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s := NewSession(opts, 1)
	s.Start()
	b := NewBoard(opts.Width, opts.Height)
	for x := 4; x < opts.Width; x++ {
		b = b.WithCell(x, 0, Meteorite)
	}
	s.state.Board = b
	i := basePiece(FamilyI)
	i.ID = "i"
	s.state.Hand[0] = i
	return s
}

func TestNewSessionStartsInMenu(t *testing.T) {
	s := NewSession(DefaultOptions(), 1)
	st := s.State()
	assert.Equal(t, StatusMenu, st.Status)
	assert.Len(t, st.Hand, DefaultHandSize)

	_, ok := s.PlacePieceAt(st.Hand[0].ID, 0, 0)
	assert.False(t, ok, "no placements from the menu")
	assert.False(t, s.SelectSlot(0))
	assert.False(t, s.Pause())

	s.Start()
	st = s.State()
	assert.Equal(t, StatusPlaying, st.Status)
	assert.Equal(t, 37, st.Board.FilledCount())
	assert.Equal(t, -1, st.Selected)
	assert.Equal(t, 1, s.Level())
}

func TestSessionDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(DefaultOptions(), 77)
		s.Start()
		for range 20 {
			st := s.State()
			if st.Status != StatusPlaying {
				break
			}
			placed := false
			for _, p := range st.Hand {
				for y := 0; y < st.Board.H && !placed; y++ {
					for x := 0; x < st.Board.W && !placed; x++ {
						if _, ok := s.PlacePieceAt(p.ID, x, y); ok {
							placed = true
						}
					}
				}
				if placed {
					break
				}
			}
		}
		return s.Snapshot()
	}
	assert.Equal(t, run(), run())
}

func TestRejectedPlacementLeavesStateUnchanged(t *testing.T) {
	opts := quietOptions()
	s := rowZeroSession(t, opts)

	tests := []struct {
		name string
		id   string
		x, y int
	}{
		{"unknown piece", "nope", 0, 0},
		{"off the right edge", "i", 8, 3},
		{"negative origin", "i", -1, 3},
		{"collision", "i", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Snapshot()
			_, ok := s.PlacePieceAt(tt.id, tt.x, tt.y)
			assert.False(t, ok)
			assert.Equal(t, before, s.Snapshot())
		})
	}

	t.Run("paused", func(t *testing.T) {
		require.True(t, s.Pause())
		before := s.Snapshot()
		_, ok := s.PlacePieceAt("i", 0, 5)
		assert.False(t, ok)
		assert.Equal(t, before, s.Snapshot())
		require.True(t, s.Resume())
	})
}

func TestPlacementClearsAndScores(t *testing.T) {
	s := rowZeroSession(t, quietOptions())

	res, ok := s.PlacePieceAt("i", 0, 0)
	require.True(t, ok)
	assert.Equal(t, []int{0}, res.Cleared.Rows)
	assert.Empty(t, res.Cleared.Cols)
	assert.Equal(t, 100, res.LineScore)
	assert.Equal(t, 50, res.Earned)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 1, res.Lines)
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 0, res.Slot)
	assert.False(t, res.GameOver)

	st := s.State()
	assert.Equal(t, 0, st.Board.FilledCount())
	assert.Equal(t, 50, st.Points)
	assert.Equal(t, 1, st.Placed)
	assert.NotEqual(t, "i", st.Hand[0].ID, "consumed slot is replenished")
	assert.Len(t, st.Hand, DefaultHandSize)
	assert.Equal(t, -1, st.Selected)

	require.True(t, st.Animation.Active())
	assert.Equal(t, DefaultClearDuration, st.Animation.Remaining())
	s.Advance(499 * time.Millisecond)
	assert.True(t, s.State().Animation.Active())
	s.Advance(time.Millisecond)
	assert.False(t, s.State().Animation.Active())
}

func TestPlacementWithoutClear(t *testing.T) {
	s := rowZeroSession(t, quietOptions())
	res, ok := s.PlacePieceAt("i", 0, 5)
	require.True(t, ok)
	assert.True(t, res.Cleared.Empty())
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 6+4, s.State().Board.FilledCount())
	assert.False(t, s.State().Animation.Active())
}

func TestRepopulateAfterClear(t *testing.T) {
	opts := quietOptions()
	opts.Repopulate = true
	opts.RepopulateDensity = 0.5
	s := rowZeroSession(t, opts)

	_, ok := s.PlacePieceAt("i", 0, 0)
	require.True(t, ok)

	b := s.State().Board
	assert.Positive(t, b.FilledCount())
	assert.LessOrEqual(t, b.FilledCount(), 5)
	for y := 1; y < b.H; y++ {
		for x := range b.W {
			assert.False(t, b.Filled(x, y), "meteorite outside row 0 at (%d,%d)", x, y)
		}
	}
}

func TestGameOverAfterSettling(t *testing.T) {
	opts := quietOptions()
	opts.Width, opts.Height = 4, 4
	s := NewSession(opts, 3)
	s.Start()

	// Every row and column keeps a hole after the placement and no two
	// remaining holes touch, so no tetromino fits.
	s.state.Board = fullBoard(4, 4, core.Pt(0, 0), core.Pt(1, 0), core.Pt(3, 1), core.Pt(0, 2), core.Pt(2, 3))
	s.state.Hand = []Piece{monomino("m")}

	res, ok := s.PlacePieceAt("m", 0, 0)
	require.True(t, ok)
	assert.True(t, res.Cleared.Empty())
	assert.True(t, res.GameOver)

	st := s.State()
	assert.Equal(t, StatusGameOver, st.Status)
	assert.False(t, HasValidMove(st.Board, st.Hand))

	_, ok = s.PlacePieceAt(st.Hand[0].ID, 1, 0)
	assert.False(t, ok)
	assert.False(t, s.RefreshHand())
	assert.False(t, s.Pause())

	s.Reset()
	assert.Equal(t, StatusPlaying, s.State().Status)
	assert.Equal(t, 0, s.State().Score)
}

func TestLevel(t *testing.T) {
	tests := []struct {
		lines, per, expected int
	}{
		{0, 10, 1},
		{9, 10, 1},
		{10, 10, 2},
		{25, 10, 3},
		{6, 3, 3},
		{5, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Level(tt.lines, tt.per), "Level(%d, %d)", tt.lines, tt.per)
	}
}

func TestPauseResume(t *testing.T) {
	s := NewSession(DefaultOptions(), 1)
	assert.False(t, s.Resume())
	s.Start()
	assert.False(t, s.Resume())
	assert.True(t, s.Pause())
	assert.Equal(t, StatusPaused, s.State().Status)
	assert.False(t, s.Pause())
	assert.False(t, s.RefreshHand())
	assert.True(t, s.Resume())
	assert.Equal(t, StatusPlaying, s.State().Status)
}

func TestSelectAndRotateHeld(t *testing.T) {
	s := NewSession(quietOptions(), 8)
	s.Start()

	assert.False(t, s.RotateHeld(Clockwise), "nothing held")

	held := s.State().Hand[2]
	require.True(t, s.SelectPiece(held.ID))
	assert.Equal(t, 2, s.State().Selected)
	assert.False(t, s.SelectPiece("missing"))
	assert.Equal(t, 2, s.State().Selected)

	require.True(t, s.RotateHeld(Clockwise))
	turned := s.State().Hand[2]
	assert.Equal(t, held.ID, turned.ID)
	assert.Equal(t, held.Rotation.Add(90), turned.Rotation)
	assert.True(t, Rotate(held).Shape.Equal(turned.Shape))

	require.True(t, s.RotateHeld(CounterClockwise))
	back := s.State().Hand[2]
	assert.Equal(t, held.Rotation, back.Rotation)
	assert.True(t, held.Shape.Equal(back.Shape))

	s.Deselect()
	assert.False(t, s.RotateHeld(Clockwise))
}

func TestRefreshHand(t *testing.T) {
	s := NewSession(DefaultOptions(), 4)
	s.Start()
	before := s.State().Hand
	require.True(t, s.SelectSlot(1))

	require.True(t, s.RefreshHand())
	after := s.State().Hand
	assert.Len(t, after, len(before))
	assert.Equal(t, -1, s.State().Selected)
	for i := range after {
		assert.NotEqual(t, before[i].ID, after[i].ID)
	}
}

func TestSpendPoints(t *testing.T) {
	s := NewSession(DefaultOptions(), 1)
	s.Start()
	s.state.Points = 30

	s.SpendPoints(-5)
	assert.Equal(t, 30, s.State().Points)
	s.SpendPoints(10)
	assert.Equal(t, 20, s.State().Points)
	s.SpendPoints(50)
	assert.Equal(t, 0, s.State().Points, "balance never goes negative")
}

func TestStartInvalidatesAnimation(t *testing.T) {
	s := rowZeroSession(t, quietOptions())
	_, ok := s.PlacePieceAt("i", 0, 0)
	require.True(t, ok)
	require.True(t, s.State().Animation.Active())

	s.Start()
	st := s.State()
	assert.False(t, st.Animation.Active())
	assert.Equal(t, 0, st.Points)
	assert.Equal(t, 0, st.Lines)
}

func TestPreviewAndPlaceAtCursor(t *testing.T) {
	s := NewSession(quietOptions(), 2)
	s.Start()
	o := basePiece(FamilyO)
	o.ID = "o"
	s.state.Hand[0] = o

	origin, ok := s.PreviewAt("o", 3, 3)
	require.True(t, ok)
	assert.Equal(t, core.Pt(2, 2), origin)

	before := s.Snapshot()
	_, ok = s.PreviewAt("o", 0, 0)
	assert.False(t, ok)
	_, ok = s.PreviewAt("nope", 3, 3)
	assert.False(t, ok)
	assert.Equal(t, before, s.Snapshot(), "previews are pure")

	res, ok := s.PlaceAtCursor("o", 3, 3)
	require.True(t, ok)
	assert.Equal(t, core.Pt(2, 2), res.Origin)
	assert.True(t, s.State().Board.Filled(3, 3))
	assert.True(t, s.State().Board.Filled(2, 2))
}

func TestSnapshotIsIndependent(t *testing.T) {
	s := NewSession(DefaultOptions(), 6)
	s.Start()
	snap := s.Snapshot()

	snap.Hand[0].Shape[0][0] ^= 1
	snap.Hand[1].ID = "changed"

	again := s.Snapshot()
	assert.NotEqual(t, snap.Hand[0].Shape, again.Hand[0].Shape)
	assert.NotEqual(t, "changed", again.Hand[1].ID)
	assert.True(t, snap.Board.Equal(again.Board))
}

func TestOptionsNormalized(t *testing.T) {
	s := NewSession(Options{}, 1)
	opts := s.Options()
	assert.Equal(t, DefaultWidth, opts.Width)
	assert.Equal(t, DefaultHeight, opts.Height)
	assert.Equal(t, DefaultHandSize, opts.HandSize)
	assert.Equal(t, DefaultLinesPerLevel, opts.LinesPerLevel)
	assert.Equal(t, DefaultRevealPresets, opts.RevealPresets)
	assert.NotNil(t, opts.Logger)
	assert.False(t, opts.Obstacles)
}

func TestOptionsRevealCosts(t *testing.T) {
	opts := DefaultOptions()
	opts.BlockCost = 0
	opts.RevealPresets = []RevealPreset{{Count: 0, Cost: 5}, {Count: 2, Cost: -10}, {Count: 4, Cost: 0}}
	s := NewSession(opts, 1)
	s.Start()

	assert.Equal(t, 0, s.Options().BlockCost, "free single reveals are allowed")
	assert.Equal(t, []RevealPreset{{Count: 4, Cost: 0}}, s.Options().RevealPresets)

	require.True(t, s.RevealAt(0, 0))
	n, ok := s.RevealRandom(0)
	require.True(t, ok)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, s.State().Points)

	opts.BlockCost = -1
	opts.RevealPresets = []RevealPreset{{Count: 1, Cost: -1}}
	got := NewSession(opts, 1).Options()
	assert.Equal(t, DefaultBlockCost, got.BlockCost)
	assert.Equal(t, DefaultRevealPresets, got.RevealPresets)
}
