package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClearAnimationLifecycle(t *testing.T) {
	a := newClearAnimation(Lines{Rows: []int{3}, Cols: []int{1}}, 400*time.Millisecond)
	assert.True(t, a.Active())
	assert.True(t, a.Covers(0, 3))
	assert.True(t, a.Covers(1, 9))
	assert.False(t, a.Covers(0, 0))

	assert.InDelta(t, 1.0, a.Intensity(), 1e-6)

	mid := a.Advance(200 * time.Millisecond)
	assert.True(t, mid.Active())
	assert.Equal(t, 200*time.Millisecond, mid.Remaining())
	assert.Less(t, mid.Intensity(), 1.0)
	assert.Greater(t, mid.Intensity(), 0.0)

	late := mid.Advance(150 * time.Millisecond)
	assert.Less(t, late.Intensity(), mid.Intensity())

	done := late.Advance(50 * time.Millisecond)
	assert.False(t, done.Active())
	assert.Equal(t, ClearAnimation{}, done)
	assert.Zero(t, done.Intensity())
	assert.False(t, done.Covers(0, 3))
}

func TestClearAnimationInactive(t *testing.T) {
	assert.False(t, newClearAnimation(Lines{}, time.Second).Active())
	assert.False(t, newClearAnimation(Lines{Rows: []int{1}}, 0).Active())

	a := newClearAnimation(Lines{Rows: []int{1}}, time.Second)
	assert.Equal(t, a, a.Advance(0))
	assert.Equal(t, a, a.Advance(-time.Second))
}

func TestClearAnimationCopiesLines(t *testing.T) {
	lines := Lines{Rows: []int{2}}
	a := newClearAnimation(lines, time.Second)
	lines.Rows[0] = 7
	assert.Equal(t, []int{2}, a.Rows)
}
