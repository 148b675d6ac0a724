package engine

import (
	"slices"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultClearDuration is how long cleared lines stay highlighted.
const DefaultClearDuration = 500 * time.Millisecond

// ClearAnimation marks the rows and columns removed by the last clear so a
// host can flash them. It is a presentation marker only: the board has
// already been cleared when the animation starts.
type ClearAnimation struct {
	Rows     []int
	Cols     []int
	Duration time.Duration
	Elapsed  time.Duration
}

// newClearAnimation copies the line indices so later edits to lines do not
// leak into the marker.
func newClearAnimation(lines Lines, d time.Duration) ClearAnimation {
	if lines.Empty() || d <= 0 {
		return ClearAnimation{}
	}
	return ClearAnimation{
		Rows:     slices.Clone(lines.Rows),
		Cols:     slices.Clone(lines.Cols),
		Duration: d,
	}
}

// Active reports whether the marker is still pending.
func (a ClearAnimation) Active() bool {
	return a.Duration > 0 && a.Elapsed < a.Duration && len(a.Rows)+len(a.Cols) > 0
}

// Remaining returns the time left before the marker expires.
func (a ClearAnimation) Remaining() time.Duration {
	if !a.Active() {
		return 0
	}
	return a.Duration - a.Elapsed
}

// Advance moves the animation forward. An expired animation collapses to the
// zero value.
func (a ClearAnimation) Advance(d time.Duration) ClearAnimation {
	if !a.Active() {
		return ClearAnimation{}
	}
	if d <= 0 {
		return a
	}
	a.Elapsed += d
	if a.Elapsed >= a.Duration {
		return ClearAnimation{}
	}
	return a
}

// Intensity returns the flash strength in [0, 1], easing out from 1 at the
// start of the window to 0 at its end.
func (a ClearAnimation) Intensity() float64 {
	if !a.Active() {
		return 0
	}
	tw := gween.New(1, 0, float32(a.Duration.Seconds()), ease.OutQuad)
	v, _ := tw.Update(float32(a.Elapsed.Seconds()))
	return min(max(float64(v), 0), 1)
}

// Covers reports whether cell (x, y) lies on a flashing row or column.
func (a ClearAnimation) Covers(x, y int) bool {
	if !a.Active() {
		return false
	}
	return slices.Contains(a.Rows, y) || slices.Contains(a.Cols, x)
}
