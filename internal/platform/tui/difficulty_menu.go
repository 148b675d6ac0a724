package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/meteorblast/internal/config"
	"github.com/vovakirdan/meteorblast/internal/core"
)

type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy    - light meteor shower"},
	{config.DifficultyNormal, "Normal  - a quarter of the board"},
	{config.DifficultyHard, "Hard    - dense field"},
	{config.DifficultyFixed, "Fixed   - meteorites never return"},
	{config.DifficultyCustom, "Custom  - as set in blockblast.yaml"},
}

// DifficultyModel lets users pick the meteorite density before a classic game.
type DifficultyModel struct {
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a selector with the cursor on current.
func NewDifficultyModel(width, height int, current config.DifficultyPreset) DifficultyModel {
	cursor := 1 // normal
	for i, opt := range difficultyOptions {
		if opt.preset == current {
			cursor = i
		}
	}

	return DifficultyModel{
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficultyOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the selector.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("M E T E O R   B L A S T", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, opt.label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or false while still choosing.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if m.choosing {
		return "", false
	}
	return m.selection, true
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector shows the selector and returns the chosen preset.
// ok is false when the user backed out or quit.
func RunDifficultySelector(cfg core.RuntimeConfig, current config.DifficultyPreset) (preset config.DifficultyPreset, ok bool, err error) {
	model := NewDifficultyModel(cfg.ScreenW, cfg.ScreenH, current)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, isModel := finalModel.(DifficultyModel)
	if !isModel || m.IsQuitting() || m.WantsBack() {
		return "", false, nil
	}

	preset, ok = m.Selected()
	return preset, ok, nil
}
