package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/meteorblast/internal/config"
	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/games/blockblast"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

// stubGame reports a fixed state and records what the model asks of it.
type stubGame struct {
	state   core.GameState
	resets  int
	resized core.Point
	steps   int
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(w, h int) { g.resized = core.Pt(w, h) }
func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.state}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 42}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestGameModelResetsOnCreate(t *testing.T) {
	g := &stubGame{}
	NewGameModel(g, nil, testRuntime())
	if g.resets != 1 {
		t.Errorf("resets = %d, expected 1", g.resets)
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, testRuntime())

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize restarted the game: resets = %d", g.resets)
	}
	if g.resized != core.Pt(100, 40) {
		t.Errorf("resized = %v, expected (100,40)", g.resized)
	}
}

func TestGameModelSavesRunOnce(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{state: core.GameState{Score: 800, Lines: 4, Level: 1, Moves: 12, GameOver: true}}
	var m tea.Model = NewGameModel(g, store, testRuntime())

	m = update(t, m, TickMsg(time.Now()))
	update(t, m, TickMsg(time.Now()))

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 800 || r.Lines != 4 || r.Level != 1 || r.Placed != 12 {
		t.Errorf("run = %+v", r)
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{state: core.GameState{GameOver: true}}
	update(t, NewGameModel(g, store, testRuntime()), TickMsg(time.Now()))

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("saved %d runs, expected none", len(runs))
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	var m tea.Model = NewGameModel(g, nil, testRuntime())

	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg(time.Now()))

	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &stubGame{state: core.GameState{Paused: true}}

	var standalone tea.Model = NewGameModel(g, nil, testRuntime())
	standalone = update(t, standalone, TickMsg(time.Now()))
	standalone = update(t, standalone, runeKey('b'))
	if standalone.(GameModel).BackToMenu() {
		t.Error("standalone game should not go back to a menu")
	}

	var embedded tea.Model = NewGameModel(g, nil, testRuntime(), WithBackToMenu())
	embedded = update(t, embedded, TickMsg(time.Now()))
	embedded = update(t, embedded, runeKey('b'))
	if !embedded.(GameModel).BackToMenu() {
		t.Error("b while paused should go back to menu")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testRuntime())
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("q should return tea.Quit")
	}
	if next.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestGameModelMouseDrivesCursor(t *testing.T) {
	game := blockblast.New()
	var m tea.Model = NewGameModel(game, nil, testRuntime())

	// Sweep the pointer over the screen until it lands on board cell (2,3).
	target := core.Pt(2, 3)
	found := false
	for y := 0; y < 30 && !found; y++ {
		for x := 0; x < 80 && !found; x++ {
			m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
			m = update(t, m, TickMsg(time.Now()))
			found = game.Cursor() == target
		}
	}
	if !found {
		t.Error("no screen cell maps to board cell (2,3)")
	}
}

func TestSessionModelFlow(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testRuntime(), nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).phase != phaseScoreboard {
		t.Fatalf("tab: phase = %v, expected scoreboard", m.(SessionModel).phase)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).phase != phaseMenu {
		t.Fatalf("esc: phase = %v, expected menu", m.(SessionModel).phase)
	}

	// First item is the classic mode, which asks for a difficulty.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.(SessionModel).phase != phaseDifficulty {
		t.Fatalf("enter: phase = %v, expected difficulty", m.(SessionModel).phase)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown}) // normal -> hard
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.phase != phaseGame || sm.gameModel == nil {
		t.Fatalf("phase = %v, expected game", sm.phase)
	}

	game, ok := sm.gameModel.game.(*blockblast.Game)
	if !ok {
		t.Fatalf("game is %T, expected *blockblast.Game", sm.gameModel.game)
	}
	if game.Difficulty() != config.DifficultyHard {
		t.Errorf("Difficulty() = %q, expected %q", game.Difficulty(), config.DifficultyHard)
	}
}

func TestSessionModelZenSkipsDifficulty(t *testing.T) {
	var m tea.Model = NewSessionModel(nil, testRuntime(), nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	sm := m.(SessionModel)
	if sm.phase != phaseGame {
		t.Fatalf("phase = %v, expected game", sm.phase)
	}
	if sm.gameModel.game.ID() != blockblast.ZenGameID {
		t.Errorf("game = %s, expected %s", sm.gameModel.game.ID(), blockblast.ZenGameID)
	}
}

func TestDifficultyModelBack(t *testing.T) {
	var m tea.Model = NewDifficultyModel(80, 24, config.DifficultyEasy)
	if m.(DifficultyModel).cursor != 0 {
		t.Errorf("cursor = %d, expected 0 for easy", m.(DifficultyModel).cursor)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	dm := m.(DifficultyModel)
	if !dm.WantsBack() {
		t.Error("esc should go back")
	}
	if _, ok := dm.Selected(); ok {
		t.Error("nothing should be selected after back")
	}
}

func TestRunRow(t *testing.T) {
	created := time.Date(2026, 3, 4, 15, 4, 0, 0, time.UTC)

	row := runRow(1, storage.Run{ID: 7, Score: 1500, Lines: 12, Level: 2, Duration: 95 * time.Second, CreatedAt: created})
	expected := []string{"#1", "1500", "12", "2", "1:35", "Mar 04 15:04"}
	for i, cell := range expected {
		if row[i] != cell {
			t.Errorf("row[%d] = %q, expected %q", i, row[i], cell)
		}
	}

	plain := runRow(2, storage.Run{Score: 900, CreatedAt: created})
	if plain[2] != "-" || plain[3] != "-" || plain[4] != "-" {
		t.Errorf("score without run should show dashes, got %v", plain)
	}
}

func TestDifficultyModelCustom(t *testing.T) {
	var m tea.Model = NewDifficultyModel(80, 24, config.DifficultyCustom)
	if got := m.(DifficultyModel).cursor; got != len(difficultyOptions)-1 {
		t.Fatalf("cursor = %d, expected the last option", got)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown}) // already at the bottom
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if p, ok := m.(DifficultyModel).Selected(); !ok || p != config.DifficultyCustom {
		t.Errorf("Selected() = %q, %v, expected %q", p, ok, config.DifficultyCustom)
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" {
		t.Errorf("Address = %q, expected :23234", cfg.Address)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.IdleTimeout)
	}
	if cfg.TickRate != 60 || cfg.DBPath == "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
