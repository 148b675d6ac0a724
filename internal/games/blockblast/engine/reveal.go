package engine

import (
	"math/rand"

	"github.com/kamstrup/intmap"
)

// Canvas defaults.
const (
	DefaultCanvasWidth  = 25
	DefaultCanvasHeight = 30
	DefaultBlockCost    = 10
)

// RevealPreset is a bulk purchase: reveal up to Count random blocks for Cost.
type RevealPreset struct {
	Count int
	Cost  int
}

// DefaultRevealPresets are the bulk purchases offered by default.
var DefaultRevealPresets = []RevealPreset{
	{Count: 1, Cost: 10},
	{Count: 3, Cost: 25},
	{Count: 5, Cost: 40},
	{Count: 10, Cost: 75},
}

// Canvas is a grid of covered blocks hiding a picture. Points earned from
// clearing lines pay for uncovering it. Only covered cells are stored.
type Canvas struct {
	w, h    int
	covered *intmap.Map[int, struct{}]
}

// NewCanvas returns a fully covered w×h canvas.
func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{w: w, h: h}
	c.Reset()
	return c
}

// Reset covers every block again.
func (c *Canvas) Reset() {
	c.covered = intmap.New[int, struct{}](c.w * c.h)
	for i := range c.w * c.h {
		c.covered.Put(i, struct{}{})
	}
}

// Width returns the canvas width in blocks.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height in blocks.
func (c *Canvas) Height() int { return c.h }

// Covered reports whether block (x, y) is still hidden. Out-of-range blocks
// are never covered.
func (c *Canvas) Covered(x, y int) bool {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return false
	}
	_, ok := c.covered.Get(y*c.w + x)
	return ok
}

// CoveredCount returns the number of hidden blocks.
func (c *Canvas) CoveredCount() int {
	return c.covered.Len()
}

// Progress returns the revealed share as a percentage in [0, 100].
func (c *Canvas) Progress() float64 {
	total := c.w * c.h
	return float64(total-c.covered.Len()) * 100 / float64(total)
}

// Complete reports whether every block has been revealed.
func (c *Canvas) Complete() bool {
	return c.covered.Len() == 0
}

func (c *Canvas) reveal(x, y int) bool {
	if !c.Covered(x, y) {
		return false
	}
	c.covered.Del(y*c.w + x)
	return true
}

// revealRandom uncovers up to n distinct covered blocks and returns how many
// were uncovered.
func (c *Canvas) revealRandom(rng *rand.Rand, n int) int {
	pool := make([]int, 0, c.covered.Len())
	for i := range c.w * c.h {
		if _, ok := c.covered.Get(i); ok {
			pool = append(pool, i)
		}
	}
	revealed := 0
	for revealed < n && len(pool) > 0 {
		j := rng.Intn(len(pool))
		c.covered.Del(pool[j])
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]
		revealed++
	}
	return revealed
}
