package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/meteorblast/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"space", runeKey(' '), core.ActionConfirm, false},
		{"z", runeKey('z'), core.ActionRotateCCW, false},
		{"x", runeKey('x'), core.ActionRotateCW, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionNextPiece, false},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, core.ActionPrevPiece, false},
		{"1", runeKey('1'), core.ActionSelectSlot1, false},
		{"6", runeKey('6'), core.ActionSelectSlot6, false},
		{"7", runeKey('7'), core.ActionNone, false},
		{"f", runeKey('f'), core.ActionRefresh, false},
		{"v", runeKey('v'), core.ActionReveal, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected {
				t.Errorf("MapKey(%q) action = %v, expected %v", tt.msg.String(), action, tt.expected)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('3'), &frame) {
		t.Error("slot key should not quit")
	}
	if !frame.Has(core.ActionSelectSlot3) {
		t.Error("frame should contain ActionSelectSlot3")
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should quit")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name    string
		msg     tea.MouseMsg
		changed bool
		click   bool
	}{
		{"motion", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, true, false},
		{"drag", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, true, false},
		{"left press", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true, true},
		{"right press", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false, false},
		{"wheel", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, false, false},
		{"release", tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			changed := km.MapMouseToFrame(tt.msg, &frame)
			if changed != tt.changed {
				t.Fatalf("MapMouseToFrame() = %v, expected %v", changed, tt.changed)
			}
			if frame.HasPointer != tt.changed {
				t.Errorf("HasPointer = %v, expected %v", frame.HasPointer, tt.changed)
			}
			if frame.Click != tt.click {
				t.Errorf("Click = %v, expected %v", frame.Click, tt.click)
			}
			if tt.changed && frame.Pointer != core.Pt(4, 7) {
				t.Errorf("Pointer = %v, expected (4,7)", frame.Pointer)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{"k", runeKey('k'), MenuActionUp},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{"q", runeKey('q'), MenuActionQuit},
		{"x", runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%s) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}
