package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/meteorblast/internal/core"
	"github.com/vovakirdan/meteorblast/internal/registry"
	"github.com/vovakirdan/meteorblast/internal/storage"
)

const noticeDuration = 2 * time.Second

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithLogger sets the logger for run events.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLocalTerminal enables the shortcuts that touch the host machine:
// ctrl+s writes a screenshot file and ctrl+y copies the screen to the
// clipboard. SSH sessions leave them off.
func WithLocalTerminal() GameOption {
	return func(m *GameModel) {
		m.local = true
	}
}

// WithBackToMenu lets b leave a paused or finished game.
func WithBackToMenu() GameOption {
	return func(m *GameModel) {
		m.embedded = true
	}
}

// GameModel is the Bubble Tea model for running a single game.
type GameModel struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	input     core.InputFrame
	gameState core.GameState
	keyMapper *KeyMapper
	logger    *log.Logger

	local    bool
	embedded bool
	started  time.Time

	notice      string
	noticeUntil time.Time

	quitting   bool
	backToMenu bool
	scoreSaved bool // whether the run has been saved for the current game over
}

// NewGameModel creates a Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		input:     core.NewInputFrame(),
		keyMapper: NewKeyMapper(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}

	// Reset here so the value-receiver Init does not lose the start time.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.started = time.Now()
	return m
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickDuration())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.input)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if m.local {
			m.saveScreenshot()
		}
		return m, nil
	case "ctrl+y":
		if m.local {
			m.copyScreen()
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.input) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.embedded && m.input.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleResize keeps the running game when it can follow the new size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.started = time.Now()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.started = time.Now()
		m.scoreSaved = false
		m.input.Clear()
		return m, tickCmd(m.config.TickDuration())
	}

	result := m.game.Step(m.input)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveRun()
		m.scoreSaved = true
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickDuration())
}

// saveRun records the finished game. Zero scores are not kept.
func (m GameModel) saveRun() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	run := storage.Run{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Lines:    m.gameState.Lines,
		Level:    m.gameState.Level,
		Placed:   m.gameState.Moves,
		Duration: time.Since(m.started).Round(time.Millisecond),
	}
	id, err := m.store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "game", run.GameID, "err", err)
		return
	}
	m.logger.Info("run saved", "id", id, "game", run.GameID, "score", run.Score, "lines", run.Lines)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.setNotice("screenshot failed")
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot dir", "dir", dir, "err", err)
		m.setNotice("screenshot failed")
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not write screenshot", "path", path, "err", err)
		m.setNotice("screenshot failed")
		return
	}
	m.setNotice("saved " + filepath.Base(path))
}

// copyScreen puts the current screen on the system clipboard as plain text.
func (m *GameModel) copyScreen() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.logger.Warn("could not copy screen", "err", err)
		m.setNotice("clipboard unavailable")
		return
	}
	m.setNotice("screen copied")
}

func (m *GameModel) setNotice(s string) {
	m.notice = s
	m.noticeUntil = time.Now().Add(noticeDuration)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.notice != "" && time.Now().Before(m.noticeUntil) {
		x := m.screen.Width() - len(m.notice) - 1
		m.screen.DrawTextColored(max(x, 0), 0, m.notice, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single local game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, WithLogger(logger), WithLocalTerminal())

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Hover previews, click places
	)

	_, err := p.Run()
	return err
}
