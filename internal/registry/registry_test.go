package registry

import (
	"testing"

	"github.com/vovakirdan/meteorblast/internal/core"
)

type fakeGame struct{ id string }

func (g fakeGame) ID() string { return g.id }
func (g fakeGame) Title() string { return "Fake " + g.id }
func (g fakeGame) Reset(core.RuntimeConfig) {}
func (g fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g fakeGame) Render(*core.Screen) {}
func (g fakeGame) State() core.GameState { return core.GameState{} }

func register(id string) {
	Register(id, func() Game { return fakeGame{id: id} })
}

func TestRegisterAndCreate(t *testing.T) {
	register("zz_test_b")
	register("zz_test_a")

	if !Exists("zz_test_a") {
		t.Fatal("Exists(zz_test_a) = false, expected true")
	}

	g, err := Create("zz_test_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_test_b" {
		t.Errorf("ID() = %q, expected %q", g.ID(), "zz_test_b")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	a, b := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_test_a":
			a = i
		case "zz_test_b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List() = %v, expected sorted entries for both test games", ids)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create() of unknown id should fail")
	}
	if Exists("no_such_game") {
		t.Error("Exists() of unknown id should be false")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"duplicate", "zz_test_dup"},
		{"empty", " "},
	}
	register("zz_test_dup")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", tt.id)
				}
			}()
			register(tt.id)
		})
	}
}
