package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardEmpty(t *testing.T) {
	b := NewBoard(10, 15)
	assert.Equal(t, 10, b.W)
	assert.Equal(t, 15, b.H)
	assert.Equal(t, 0, b.FilledCount())
	assert.False(t, b.Filled(-1, 0))
	assert.False(t, b.Filled(10, 0))
}

func TestBoardCopyOnWrite(t *testing.T) {
	b := NewBoard(4, 4)
	c := b.WithCell(1, 2, Meteorite)

	assert.False(t, b.Filled(1, 2), "original must stay empty")
	f, ok := c.At(1, 2)
	require.True(t, ok)
	assert.Equal(t, Meteorite, f)

	assert.True(t, b.Equal(b.Clone()))
	assert.False(t, b.Equal(c))
	assert.True(t, c.Equal(c.WithCell(9, 9, Meteorite)), "out-of-bounds write is ignored")
}

func TestSeedObstacles(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		density  float64
		expected int
	}{
		{"default", 10, 15, 0.25, 37},
		{"easy", 10, 15, 0.15, 22},
		{"hard", 10, 15, 0.35, 52},
		{"none", 10, 15, 0, 0},
		{"saturated", 3, 3, 1.5, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			empty := NewBoard(tt.w, tt.h)
			b := SeedObstacles(empty, newRNG(42), tt.density)
			assert.Equal(t, tt.expected, b.FilledCount())
			assert.Equal(t, 0, empty.FilledCount(), "input board must not change")
		})
	}
}

func TestSeedObstaclesDeterministic(t *testing.T) {
	a := SeedObstacles(NewBoard(10, 15), newRNG(3), 0.25)
	b := SeedObstacles(NewBoard(10, 15), newRNG(3), 0.25)
	assert.True(t, a.Equal(b))
}

func TestRepopulateTouchesLeadingLines(t *testing.T) {
	b := NewBoard(10, 15)
	lines := Lines{Rows: []int{7, 12}, Cols: []int{5}}
	out := Repopulate(b, newRNG(11), lines, 0.5)

	for y := range out.H {
		for x := range out.W {
			if !out.Filled(x, y) {
				continue
			}
			// Rows 0 and 1 (two cleared rows) and column 0 (one cleared column).
			assert.True(t, y < 2 || x == 0, "unexpected meteorite at (%d,%d)", x, y)
		}
	}
	assert.Positive(t, out.FilledCount())
	// At most floor(10*0.5) per row and floor(15*0.5) in the column.
	assert.LessOrEqual(t, out.FilledCount(), 5+5+7)
	assert.Equal(t, 0, b.FilledCount())
}

func TestRepopulateSkipsOccupied(t *testing.T) {
	b := fullBoard(6, 6)
	out := Repopulate(b, newRNG(5), Lines{Rows: []int{0}}, 1)
	assert.True(t, b.Equal(out))
	for y := range 6 {
		for x := range 6 {
			f, _ := out.At(x, y)
			assert.Equal(t, Meteorite, f)
		}
	}
}

func TestRepopulateNoLines(t *testing.T) {
	b := NewBoard(5, 5)
	out := Repopulate(b, newRNG(1), Lines{}, 1)
	assert.Equal(t, 0, out.FilledCount())
}

func TestBoardString(t *testing.T) {
	b := NewBoard(3, 2).WithCell(0, 0, Meteorite).WithCell(2, 1, Meteorite)
	assert.Equal(t, "#..\n..#", b.String())
}
