package registry

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("stub_b", func() Game { return &stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") || !Exists("stub_b") {
		t.Fatal("registered games should exist")
	}
	if Exists("stub_missing") {
		t.Error("unregistered game reported as existing")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("Create returned %q", g.ID())
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	var ids []string
	for _, info := range List() {
		if info.ID == "stub_a" || info.ID == "stub_b" {
			ids = append(ids, info.ID)
			if info.Title != "Stub "+info.ID {
				t.Errorf("title for %s = %q", info.ID, info.Title)
			}
		}
	}
	if len(ids) != 2 || ids[0] != "stub_a" {
		t.Errorf("List should be sorted by ID, got %v", ids)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", func() Game { return &stubGame{id: "stub_dup"} })
}
