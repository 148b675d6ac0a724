// Package blockblast adapts the Meteor Blast rules engine to the arcade
// platform: it maps input frames onto session operations and draws the board,
// hand and reveal canvas into a core.Screen.
package blockblast

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/meteorblast/internal/config"
	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast/engine"
	"github.com/vovakirdan/meteorblast/internal/registry"
)

// Mode selects the rule set.
type Mode string

const (
	ModeClassic Mode = "classic" // meteorites seeded and repopulated
	ModeZen     Mode = "zen"     // empty board, nothing falls back
)

// Registry IDs.
const (
	GameID    = "blockblast"
	ZenGameID = "blockblast_zen"
)

const messageDuration = 2 * time.Second

// Package-level settings applied on the next Reset.
var (
	configPath string
	difficulty config.DifficultyPreset
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom YAML config path. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficulty sets the difficulty preset applied on top of the config.
func SetDifficulty(p config.DifficultyPreset) {
	difficulty = p
}

// GetDifficulty returns the active difficulty preset.
func GetDifficulty() config.DifficultyPreset {
	return difficulty
}

// SetLogger sets the logger used for session events. nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for Meteor Blast.
type Game struct {
	mode    Mode
	preset  config.DifficultyPreset // overrides the package difficulty when set
	session *engine.Session
	opts    engine.Options
	tick    time.Duration

	screenW  int
	screenH  int
	tooSmall bool

	cursor  core.Point // board cell under the cursor
	slot    int        // highlighted hand slot
	picture bool       // side panel shows the reveal canvas instead of the hand

	message     string
	messageLeft time.Duration
}

// New creates a classic game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewZen creates a game without meteorites.
func NewZen() *Game {
	return &Game{mode: ModeZen}
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(ZenGameID, func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return ZenGameID
	}
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Meteor Blast (Zen)"
	}
	return "Meteor Blast"
}

// OptionsFromConfig converts a loaded config into engine options for mode.
func OptionsFromConfig(cfg config.BlockBlastConfig, mode Mode) engine.Options {
	presets := make([]engine.RevealPreset, 0, len(cfg.Reveal.Presets))
	for _, p := range cfg.Reveal.Presets {
		presets = append(presets, engine.RevealPreset{Count: p.Count, Cost: p.Cost})
	}

	opts := engine.Options{
		Width:             cfg.Board.Width,
		Height:            cfg.Board.Height,
		HandSize:          cfg.Hand.Size,
		Obstacles:         cfg.Obstacles.Enabled,
		ObstacleDensity:   cfg.Obstacles.Density,
		Repopulate:        cfg.Obstacles.Enabled && cfg.Obstacles.RepopulateOnClears,
		RepopulateDensity: cfg.Obstacles.RepopulateDensity,
		LinesPerLevel:     cfg.Progression.LinesPerLevel,
		PointsRatio:       cfg.Progression.PointsRatio,
		ClearDuration:     time.Duration(cfg.Animation.ClearMillis) * time.Millisecond,
		CanvasWidth:       cfg.Reveal.Width,
		CanvasHeight:      cfg.Reveal.Height,
		BlockCost:         cfg.Reveal.BlockCost,
		RevealPresets:     presets,
	}
	if mode == ModeZen {
		opts.Obstacles = false
		opts.Repopulate = false
	}
	return opts
}

// Reset loads the config and deals a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	gameCfg, err := config.LoadBlockBlast(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
	}
	preset := g.Difficulty()
	config.ApplyBlockBlastPreset(&gameCfg, preset)

	g.opts = OptionsFromConfig(gameCfg, g.mode)
	g.opts.Logger = logger
	g.tick = cfg.TickDuration()

	g.session = engine.NewSession(g.opts, cfg.Seed)
	g.session.Start()
	g.opts = g.session.Options()

	g.cursor = core.Pt(g.opts.Width/2, g.opts.Height/2)
	g.slot = 0
	g.picture = false
	g.session.SelectSlot(g.slot)
	g.message = ""
	g.messageLeft = 0

	g.Resize(cfg.ScreenW, cfg.ScreenH)
	logger.Info("new game", "mode", g.mode, "difficulty", preset, "seed", cfg.Seed)
}

// SetDifficulty overrides the difficulty for this game only. It takes effect
// on the next Reset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// Difficulty returns the preset the next Reset will apply.
func (g *Game) Difficulty() config.DifficultyPreset {
	if g.preset != "" {
		return g.preset
	}
	return difficulty
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Session exposes the underlying rules session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	g.session.Advance(g.tick)
	if g.messageLeft > 0 {
		g.messageLeft -= g.tick
		if g.messageLeft <= 0 {
			g.message = ""
		}
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if !g.session.Pause() {
			g.session.Resume()
		}
	}
	if in.Has(core.ActionReveal) {
		g.picture = !g.picture
	}

	if g.session.State().Status != engine.StatusPlaying {
		return core.StepResult{State: g.State()}
	}

	if g.picture {
		g.handleReveal(in)
	}
	g.handleSlots(in)
	g.handleCursor(in)

	if in.Has(core.ActionRotateCW) {
		g.session.RotateHeld(engine.Clockwise)
	}
	if in.Has(core.ActionRotateCCW) {
		g.session.RotateHeld(engine.CounterClockwise)
	}
	if in.Has(core.ActionRefresh) && g.session.RefreshHand() {
		g.session.SelectSlot(g.slot)
		g.flash("New hand")
	}
	if in.Has(core.ActionConfirm) || (in.HasPointer && in.Click && g.pointerOnBoard(in.Pointer)) {
		g.placeAtCursor()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleSlots(in core.InputFrame) {
	hand := len(g.session.State().Hand)
	if hand == 0 {
		return
	}
	if in.Has(core.ActionNextPiece) {
		g.selectSlot((g.slot + 1) % hand)
	}
	if in.Has(core.ActionPrevPiece) {
		g.selectSlot((g.slot - 1 + hand) % hand)
	}
	// The picture panel takes over the number keys and the panel area.
	if g.picture {
		return
	}
	for a := core.ActionSelectSlot1; a <= core.ActionSelectSlot6; a++ {
		if !in.Has(a) {
			continue
		}
		if i, ok := a.Slot(); ok && i < hand {
			g.selectSlot(i)
		}
	}
	if in.HasPointer && in.Click {
		if i, ok := g.slotAt(in.Pointer); ok && i < hand {
			g.selectSlot(i)
		}
	}
}

func (g *Game) selectSlot(i int) {
	if g.session.SelectSlot(i) {
		g.slot = i
	}
}

func (g *Game) handleCursor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Y--
	case in.Has(core.ActionDown):
		g.cursor.Y++
	case in.Has(core.ActionLeft):
		g.cursor.X--
	case in.Has(core.ActionRight):
		g.cursor.X++
	}
	if in.HasPointer {
		if cell, ok := g.boardCellAt(in.Pointer); ok {
			g.cursor = cell
		}
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, g.opts.Width-1)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, g.opts.Height-1)
}

func (g *Game) placeAtCursor() {
	p, ok := g.session.State().SelectedPiece()
	if !ok {
		g.flash("Pick a piece first")
		return
	}
	res, ok := g.session.PlaceAtCursor(p.ID, g.cursor.X, g.cursor.Y)
	if !ok {
		g.flash("No room there")
		return
	}
	if !res.GameOver {
		g.session.SelectSlot(g.slot)
	}
	if n := res.Cleared.Count(); n > 0 {
		g.flash(fmt.Sprintf("%d line(s)! +%d", n, res.LineScore))
	}
}

// handleReveal buys reveal presets with the number keys and uncovers the
// clicked canvas block.
func (g *Game) handleReveal(in core.InputFrame) {
	for a := core.ActionSelectSlot1; a <= core.ActionSelectSlot6; a++ {
		if !in.Has(a) {
			continue
		}
		if i, ok := a.Slot(); ok && i < len(g.opts.RevealPresets) {
			g.buyPreset(i)
		}
	}
	if in.HasPointer && in.Click {
		if b, ok := g.canvasBlockAt(in.Pointer); ok {
			g.revealBlock(b)
		}
	}
}

func (g *Game) buyPreset(i int) {
	n, ok := g.session.RevealRandom(i)
	if !ok {
		if g.session.Canvas().Complete() {
			g.flash("Picture complete")
		} else {
			g.flash("Not enough points")
		}
		return
	}
	g.flash(fmt.Sprintf("Revealed %d block(s)", n))
}

func (g *Game) revealBlock(b core.Point) {
	switch {
	case g.session.RevealAt(b.X, b.Y):
		g.flash("Revealed 1 block")
	case !g.session.Canvas().Covered(b.X, b.Y):
		g.flash("Already revealed")
	default:
		g.flash("Not enough points")
	}
}

// ShowingPicture reports whether the side panel shows the reveal canvas.
func (g *Game) ShowingPicture() bool {
	return g.picture
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageLeft = messageDuration
}

// Cursor returns the board cell under the cursor.
func (g *Game) Cursor() core.Point {
	return g.cursor
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Level: 1}
	}
	st := g.session.State()
	return core.GameState{
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    g.session.Level(),
		Moves:    st.Placed,
		GameOver: st.Status == engine.StatusGameOver,
		Paused:   st.Status == engine.StatusPaused || g.tooSmall,
	}
}
