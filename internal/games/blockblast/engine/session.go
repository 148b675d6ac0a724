package engine

import (
	"io"
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/meteorblast/internal/core"
)

// Status is the session lifecycle phase.
type Status string

const (
	StatusMenu     Status = "menu"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "gameOver"
)

// Defaults for a classic game.
const (
	DefaultWidth         = 10
	DefaultHeight        = 15
	DefaultHandSize      = 6
	DefaultDensity       = 0.25
	DefaultLinesPerLevel = 10
	DefaultPointsRatio   = 0.5
)

const noSelection = -1

// Options configures a session.
type Options struct {
	Width, Height     int
	HandSize          int
	Obstacles         bool    // seed meteorites on a new board
	ObstacleDensity   float64 // share of cells seeded
	Repopulate        bool    // drop meteorites after clears
	RepopulateDensity float64 // share of a row/column attempted per repopulation
	LinesPerLevel     int
	PointsRatio       float64 // reveal points earned per line-clear point
	ClearDuration     time.Duration

	CanvasWidth, CanvasHeight int
	BlockCost                 int
	RevealPresets             []RevealPreset

	Logger *log.Logger
}

// DefaultOptions returns the classic rules: a 10×15 board, six-piece hand,
// 25% meteorites and repopulation after every clear.
func DefaultOptions() Options {
	return Options{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		HandSize:          DefaultHandSize,
		Obstacles:         true,
		ObstacleDensity:   DefaultDensity,
		Repopulate:        true,
		RepopulateDensity: DefaultDensity,
		LinesPerLevel:     DefaultLinesPerLevel,
		PointsRatio:       DefaultPointsRatio,
		ClearDuration:     DefaultClearDuration,
		CanvasWidth:       DefaultCanvasWidth,
		CanvasHeight:      DefaultCanvasHeight,
		BlockCost:         DefaultBlockCost,
		RevealPresets:     slices.Clone(DefaultRevealPresets),
	}
}

// normalized replaces unusable values with defaults. A zero density, duration
// or cost is valid and kept. Presets that reveal nothing or pay out are dropped.
func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.HandSize <= 0 {
		o.HandSize = DefaultHandSize
	}
	if o.LinesPerLevel <= 0 {
		o.LinesPerLevel = DefaultLinesPerLevel
	}
	if o.PointsRatio < 0 {
		o.PointsRatio = 0
	}
	if o.ClearDuration < 0 {
		o.ClearDuration = 0
	}
	if o.CanvasWidth <= 0 {
		o.CanvasWidth = DefaultCanvasWidth
	}
	if o.CanvasHeight <= 0 {
		o.CanvasHeight = DefaultCanvasHeight
	}
	if o.BlockCost < 0 {
		o.BlockCost = DefaultBlockCost
	}
	o.RevealPresets = slices.DeleteFunc(slices.Clone(o.RevealPresets), func(p RevealPreset) bool {
		return p.Count < 1 || p.Cost < 0
	})
	if len(o.RevealPresets) == 0 {
		o.RevealPresets = slices.Clone(DefaultRevealPresets)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// State is one immutable version of a game. Transition functions take a State
// and return a new one; the receiver's board and hand are never modified.
type State struct {
	Board     Board
	Hand      []Piece
	Selected  int // hand slot, -1 when nothing is held
	Score     int
	Lines     int
	Points    int
	Placed    int // pieces placed this game
	Status    Status
	Animation ClearAnimation
}

// Level derives the level from cleared lines.
func Level(lines, perLevel int) int {
	if perLevel <= 0 {
		perLevel = DefaultLinesPerLevel
	}
	return lines/perLevel + 1
}

// Slot returns the hand index of the piece with the given instance ID.
func (s State) Slot(id string) int {
	for i, p := range s.Hand {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SelectedPiece returns the held piece, if any.
func (s State) SelectedPiece() (Piece, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Hand) {
		return Piece{}, false
	}
	return s.Hand[s.Selected], true
}

// NewGame builds a fresh playing state.
func NewGame(opts Options, rng *rand.Rand) State {
	opts = opts.normalized()
	board := NewBoard(opts.Width, opts.Height)
	if opts.Obstacles {
		board = SeedObstacles(board, rng, opts.ObstacleDensity)
	}
	return State{
		Board:    board,
		Hand:     RandomHand(rng, opts.HandSize),
		Selected: noSelection,
		Status:   StatusPlaying,
	}
}

// PlacementResult describes a settled placement.
type PlacementResult struct {
	Piece     Piece
	Slot      int
	Origin    core.Point
	Cleared   Lines
	LineScore int
	Earned    int // reveal points earned
	Score     int
	Lines     int
	Level     int
	GameOver  bool
}

// PlacePiece settles piece id at origin: stamp, detect and clear lines, repopulate,
// score, replenish the consumed slot and finally test for game over. The
// returned state is unchanged from s when the request is rejected.
func PlacePiece(s State, opts Options, rng *rand.Rand, id string, origin core.Point) (State, PlacementResult, bool) {
	opts = opts.normalized()
	if s.Status != StatusPlaying {
		return s, PlacementResult{}, false
	}
	slot := s.Slot(id)
	if slot < 0 {
		return s, PlacementResult{}, false
	}
	piece := s.Hand[slot]
	if !CanPlace(s.Board, piece, origin.X, origin.Y) {
		return s, PlacementResult{}, false
	}

	next := s
	next.Board = Place(s.Board, piece, origin.X, origin.Y)
	next.Placed++

	lines := DetectLines(next.Board)
	lineScore := 0
	earned := 0
	if !lines.Empty() {
		next.Board = Clear(next.Board, lines)
		if opts.Repopulate {
			next.Board = Repopulate(next.Board, rng, lines, opts.RepopulateDensity)
		}
		lineScore = Score(lines)
		earned = int(math.Floor(float64(lineScore) * opts.PointsRatio))
		next.Score += lineScore
		next.Lines += lines.Count()
		next.Points += earned
		next.Animation = newClearAnimation(lines, opts.ClearDuration)
	}

	next.Hand = slices.Clone(s.Hand)
	next.Hand[slot] = RandomPiece(rng)
	next.Selected = noSelection

	gameOver := !HasValidMove(next.Board, next.Hand)
	if gameOver {
		next.Status = StatusGameOver
	}

	return next, PlacementResult{
		Piece:     piece,
		Slot:      slot,
		Origin:    origin,
		Cleared:   lines,
		LineScore: lineScore,
		Earned:    earned,
		Score:     next.Score,
		Lines:     next.Lines,
		Level:     Level(next.Lines, opts.LinesPerLevel),
		GameOver:  gameOver,
	}, true
}

// Preview resolves where piece id would land with its anchor on cell (cx, cy).
func Preview(s State, id string, cx, cy int) (core.Point, bool) {
	slot := s.Slot(id)
	if slot < 0 {
		return core.Point{}, false
	}
	return ResolveOrigin(s.Board, s.Hand[slot], cx, cy)
}

// RotateSelected rotates the held piece in its slot. The instance ID is kept
// so the piece stays selectable by the same ID.
func RotateSelected(s State, dir Direction) (State, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	p, ok := s.SelectedPiece()
	if !ok {
		return s, false
	}
	next := s
	next.Hand = slices.Clone(s.Hand)
	if dir == CounterClockwise {
		next.Hand[s.Selected] = RotateCounterClockwise(p)
	} else {
		next.Hand[s.Selected] = Rotate(p)
	}
	return next, true
}

// Session owns the evolving State of one player's game, its RNG and the
// reveal canvas. It is not safe for concurrent use.
type Session struct {
	opts   Options
	rng    *rand.Rand
	state  State
	canvas *Canvas
	log    *log.Logger
}

// NewSession creates a session in the menu status. The board and hand are
// already dealt so a host can draw them behind its menu.
func NewSession(opts Options, seed int64) *Session {
	opts = opts.normalized()
	s := &Session{
		opts:   opts,
		rng:    rand.New(rand.NewSource(seed)),
		canvas: NewCanvas(opts.CanvasWidth, opts.CanvasHeight),
		log:    opts.Logger,
	}
	s.state = NewGame(opts, s.rng)
	s.state.Status = StatusMenu
	return s
}

// Options returns the normalized options the session runs with.
func (s *Session) Options() Options { return s.opts }

// State returns the current state version.
func (s *Session) State() State { return s.state }

// Canvas returns the reveal canvas.
func (s *Session) Canvas() *Canvas { return s.canvas }

// Level returns the current level.
func (s *Session) Level() int {
	return Level(s.state.Lines, s.opts.LinesPerLevel)
}

// Start begins a new game: new board, new hand, zeroed counters, a covered
// canvas and no pending animation.
func (s *Session) Start() {
	s.state = NewGame(s.opts, s.rng)
	s.canvas.Reset()
	s.log.Debug("game started", "board", core.Pt(s.opts.Width, s.opts.Height), "meteorites", s.state.Board.FilledCount())
}

// Reset is Start.
func (s *Session) Reset() { s.Start() }

// Pause suspends a running game.
func (s *Session) Pause() bool {
	if s.state.Status != StatusPlaying {
		return false
	}
	s.state.Status = StatusPaused
	return true
}

// Resume continues a paused game.
func (s *Session) Resume() bool {
	if s.state.Status != StatusPaused {
		return false
	}
	s.state.Status = StatusPlaying
	return true
}

// SelectPiece holds the hand piece with the given instance ID.
func (s *Session) SelectPiece(id string) bool {
	return s.SelectSlot(s.state.Slot(id))
}

// SelectSlot holds the piece in hand slot i.
func (s *Session) SelectSlot(i int) bool {
	if s.state.Status != StatusPlaying || i < 0 || i >= len(s.state.Hand) {
		return false
	}
	s.state.Selected = i
	return true
}

// Deselect drops the held piece.
func (s *Session) Deselect() {
	s.state.Selected = noSelection
}

// PlacePieceAt places piece id with its top-left corner at origin (x, y).
func (s *Session) PlacePieceAt(id string, x, y int) (PlacementResult, bool) {
	next, res, ok := PlacePiece(s.state, s.opts, s.rng, id, core.Pt(x, y))
	if !ok {
		return PlacementResult{}, false
	}
	s.state = next

	s.log.Debug("piece placed", "piece", res.Piece.Name, "slot", res.Slot, "origin", res.Origin)
	if !res.Cleared.Empty() {
		s.log.Debug("lines cleared", "rows", res.Cleared.Rows, "cols", res.Cleared.Cols, "score", res.LineScore, "points", res.Earned)
	}
	if res.GameOver {
		s.log.Info("game over", "score", res.Score, "lines", res.Lines, "level", res.Level)
	}
	return res, true
}

// PlaceAtCursor resolves the origin from the cursor cell through the piece's
// anchor and places there.
func (s *Session) PlaceAtCursor(id string, cx, cy int) (PlacementResult, bool) {
	origin, ok := s.PreviewAt(id, cx, cy)
	if !ok {
		return PlacementResult{}, false
	}
	return s.PlacePieceAt(id, origin.X, origin.Y)
}

// PreviewAt returns the origin piece id would use with its anchor on (cx, cy).
func (s *Session) PreviewAt(id string, cx, cy int) (core.Point, bool) {
	return Preview(s.state, id, cx, cy)
}

// RotateHeld rotates the selected piece.
func (s *Session) RotateHeld(dir Direction) bool {
	next, ok := RotateSelected(s.state, dir)
	if ok {
		s.state = next
	}
	return ok
}

// RefreshHand deals a whole new hand. It is free and only allowed while
// playing.
func (s *Session) RefreshHand() bool {
	if s.state.Status != StatusPlaying {
		return false
	}
	s.state.Hand = RandomHand(s.rng, s.opts.HandSize)
	s.state.Selected = noSelection
	s.log.Debug("hand refreshed")
	return true
}

// SpendPoints deducts n reveal points, flooring the balance at zero.
func (s *Session) SpendPoints(n int) {
	if n <= 0 {
		return
	}
	s.state.Points = max(s.state.Points-n, 0)
}

// RevealAt uncovers canvas block (x, y) for the block cost.
func (s *Session) RevealAt(x, y int) bool {
	cost := s.opts.BlockCost
	if s.state.Points < cost || !s.canvas.Covered(x, y) {
		return false
	}
	s.canvas.reveal(x, y)
	s.SpendPoints(cost)
	return true
}

// RevealRandom buys reveal preset i and returns the number of blocks
// uncovered.
func (s *Session) RevealRandom(i int) (int, bool) {
	if i < 0 || i >= len(s.opts.RevealPresets) {
		return 0, false
	}
	preset := s.opts.RevealPresets[i]
	if s.state.Points < preset.Cost || s.canvas.Complete() {
		return 0, false
	}
	n := s.canvas.revealRandom(s.rng, preset.Count)
	s.SpendPoints(preset.Cost)
	s.log.Debug("blocks revealed", "count", n, "cost", preset.Cost, "progress", s.canvas.Progress())
	return n, true
}

// Advance moves the clear animation forward by elapsed.
func (s *Session) Advance(elapsed time.Duration) {
	s.state.Animation = s.state.Animation.Advance(elapsed)
}

// Snapshot captures the complete session state as an independent value.
type Snapshot struct {
	Board          Board
	Hand           []Piece
	Selected       int
	Score          int
	Lines          int
	Level          int
	Points         int
	Placed         int
	Status         Status
	Animation      ClearAnimation
	RevealProgress float64
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() Snapshot {
	hand := make([]Piece, len(s.state.Hand))
	for i, p := range s.state.Hand {
		p.Shape = p.Shape.Clone()
		hand[i] = p
	}
	anim := s.state.Animation
	anim.Rows = slices.Clone(anim.Rows)
	anim.Cols = slices.Clone(anim.Cols)
	return Snapshot{
		Board:          s.state.Board.Clone(),
		Hand:           hand,
		Selected:       s.state.Selected,
		Score:          s.state.Score,
		Lines:          s.state.Lines,
		Level:          s.Level(),
		Points:         s.state.Points,
		Placed:         s.state.Placed,
		Status:         s.state.Status,
		Animation:      anim,
		RevealProgress: s.canvas.Progress(),
	}
}
