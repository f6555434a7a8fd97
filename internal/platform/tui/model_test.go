package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// scriptedGame reports whatever state the test sets.
type scriptedGame struct {
	state   core.GameState
	steps   int
	resets  int
	resized [2]int
	layout  string
	last    core.InputFrame
}

func (g *scriptedGame) ID() string { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *scriptedGame) State() core.GameState { return g.state }
func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }
func (g *scriptedGame) UseLayout(id string) { g.layout = id }
func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in.Clone()
	return core.StepResult{State: g.state, Updated: true}
}

func newTestModel(t *testing.T, g *scriptedGame, opts GameOptions) (GameModel, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}
	return NewGameModel(g, store, cfg, opts), store
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelPassesLayout(t *testing.T) {
	g := &scriptedGame{}
	newTestModel(t, g, GameOptions{LayoutID: "mini"})
	if g.layout != "mini" {
		t.Errorf("layout = %q, expected mini", g.layout)
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	g := &scriptedGame{}
	m, store := newTestModel(t, g, GameOptions{LayoutID: "mini"})

	g.state = core.GameState{Score: 42, Level: 3, GameOver: true}
	for range 3 {
		m = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Score != 42 || scores[0].Wave != 3 || scores[0].Layout != "mini" {
		t.Errorf("saved %+v", scores[0])
	}

	// A new game over after a restart is saved again.
	g.state = core.GameState{Score: 7}
	m = update(t, m, TickMsg{})
	g.state = core.GameState{Score: 9, GameOver: true}
	update(t, m, TickMsg{})

	scores, _ = store.TopScores("scripted", 10)
	if len(scores) != 2 {
		t.Errorf("Expected 2 saved scores, got %d", len(scores))
	}
}

func TestGameModelSkipsZeroScore(t *testing.T) {
	g := &scriptedGame{state: core.GameState{GameOver: true}}
	m, store := newTestModel(t, g, GameOptions{})

	update(t, m, TickMsg{})

	if high, _ := store.HighScore("scripted"); high != 0 {
		t.Errorf("zero score should not be saved, high = %d", high)
	}
}

func TestGameModelInputReachesGame(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, GameOptions{})

	m = update(t, m, keyMsg("left"))
	m = update(t, m, keyMsg(" "))
	m = update(t, m, TickMsg{})

	if g.last.Last != core.ActionLeft || !g.last.Has(core.ActionFire) {
		t.Errorf("game saw %+v", g.last)
	}

	// Input is cleared after each tick.
	update(t, m, TickMsg{})
	if g.last.Has(core.ActionFire) {
		t.Error("input should not carry over to the next tick")
	}
}

func TestGameModelResize(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, GameOptions{})

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", g.resized)
	}
	if g.resets != 0 {
		t.Error("resizable games should not be reset")
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, GameOptions{AllowBack: true})

	m = update(t, m, keyMsg("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while playing")
	}

	g.state = core.GameState{Paused: true}
	m = update(t, m, TickMsg{})
	m = update(t, m, keyMsg("b"))
	if !m.BackToMenu() {
		t.Error("back should return to the menu while paused")
	}
}

func TestGameModelQuit(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, GameOptions{})

	m = update(t, m, keyMsg("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "invaders", core.ColorGreen)
	s.DrawText(0, 1, "score 10")

	out := RenderScreen(s)
	if !strings.Contains(out, "invaders") || !strings.Contains(out, "score 10") {
		t.Errorf("rendered text lost: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
}
