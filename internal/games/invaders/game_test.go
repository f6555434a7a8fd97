package invaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/engine"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// One alien above the player's column on a 4x4 board.
const duelLayout = `id: duel
name: Duel
formation_cols: 1
board: |
  .@..
  ....
  ....
  .^..
`

const calmConfig = `engine:
  tick_divider: 1
  player_max_shots: 3
  enemy_max_shots: 1
  bonus_points: 5
formation:
  move_every: 10
  min_move_every: 2
difficulty:
  enabled: false
`

const rampConfig = `engine:
  tick_divider: 1
formation:
  move_every: 10
  min_move_every: 2
difficulty:
  enabled: true
  initial_level: 0
  progression:
    type: wave
    max_at: 1
  scaling:
    interval_reduction: 4
`

var testRuntime = core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}

// setup points the package at a temp layout dir and config file.
func setup(t *testing.T, cfg string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "duel.yaml"), []byte(duelLayout), 0o644))
	cfgPath := filepath.Join(t.TempDir(), "invaders.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	SetLayoutDir(dir)
	SetLayout("duel")
	SetConfigPath(cfgPath)
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetLayoutDir("")
		SetLayout("")
		SetConfigPath("")
	})
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// shootAndDodge fires at the alien, then steps out of the return shot.
func shootAndDodge(g *Game) core.StepResult {
	g.Step(frame(core.ActionFire))
	g.Step(frame(core.ActionRight))
	return g.Step(frame())
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"invaders", "invaders_single"} {
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestSingleModeWin(t *testing.T) {
	setup(t, calmConfig)
	g := NewSingle()
	g.Reset(testRuntime)
	require.Equal(t, "duel", g.Layout().ID)

	res := shootAndDodge(g)
	assert.True(t, res.Updated)
	assert.True(t, res.State.Won)
	assert.True(t, res.State.GameOver)
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, StateWin, g.Snapshot().State)

	// Frozen until restart.
	res = g.Step(frame(core.ActionFire))
	assert.False(t, res.Updated)

	res = g.Step(frame(core.ActionRestart))
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 0, res.State.Score)
	assert.Equal(t, 1, g.Engine().LivingAliens())
}

func TestWaveModeAdvances(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	res := shootAndDodge(g)
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 2, res.State.Level)
	assert.Equal(t, 1, res.State.Score)
	assert.Equal(t, 1, g.Engine().LivingAliens())
	assert.Equal(t, engine.P(3, 1), g.Engine().PlayerPosition())
}

func TestWaveSpeedsUpFormation(t *testing.T) {
	setup(t, rampConfig)
	g := New()
	g.Reset(testRuntime)
	assert.Equal(t, 10, g.Engine().Formation().MoveEvery())

	shootAndDodge(g)
	require.Equal(t, 2, g.Engine().Wave())
	assert.Equal(t, 6, g.Engine().Formation().MoveEvery())
}

func TestShotEndsGameAndRestart(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	// Restart is ignored mid-game.
	g.Step(frame(core.ActionRestart))
	assert.False(t, g.State().GameOver)

	var res core.StepResult
	for range 3 {
		res = g.Step(frame())
	}
	require.True(t, res.State.GameOver)
	assert.False(t, res.State.Won)
	assert.Equal(t, StateGameOver, g.Snapshot().State)

	// Pause is ignored once the game is over.
	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)

	res = g.Step(frame(core.ActionRestart))
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 1, res.State.Level)
}

func TestPauseFreezesEngine(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)
	assert.False(t, res.Updated)

	before := g.Snapshot()
	for range 5 {
		res = g.Step(frame(core.ActionFire))
		assert.False(t, res.Updated)
	}
	after := g.Snapshot()
	assert.Equal(t, before.Board, after.Board)
	assert.Equal(t, before.Tick+5, after.Tick)
	assert.Equal(t, StatePaused, after.State)

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
	assert.True(t, res.Updated)
}

func TestDeterminism(t *testing.T) {
	setup(t, calmConfig)
	g1, g2 := New(), New()
	g1.Reset(testRuntime)
	g2.Reset(testRuntime)

	script := []core.Action{core.ActionFire, core.ActionRight, core.ActionNone, core.ActionLeft, core.ActionFire}
	for i := range 20 {
		in := frame(script[i%len(script)])
		g1.Step(in)
		g2.Step(in)
	}
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestResizeTooSmall(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	g.Resize(3, 10)
	res := g.Step(frame(core.ActionFire))
	assert.False(t, res.Updated)
	assert.Equal(t, StatePausedSmall, g.Snapshot().State)

	dst := core.NewScreen(3, 10)
	g.Render(dst)
	assert.NotContains(t, dst.String(), "@")

	g.Resize(testRuntime.ScreenW, testRuntime.ScreenH)
	res = g.Step(frame())
	assert.True(t, res.Updated)
	assert.Equal(t, uint64(2), g.Snapshot().Tick)
}

func TestRenderBoard(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	dst := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(dst)

	// 4x4 board centered in the 40x9 area below the HUD.
	assert.Equal(t, core.Cell{Rune: '@', Color: core.ColorGreen}, dst.GetCell(19, 3))
	assert.Equal(t, core.Cell{Rune: '^', Color: core.ColorBrightYellow}, dst.GetCell(19, 6))
	assert.Equal(t, '.', dst.Get(18, 3))
	assert.True(t, strings.HasPrefix(dst.Row(0), " Score: 0"))

	g.Step(frame(core.ActionFire))
	g.Render(dst)
	assert.Equal(t, core.Cell{Rune: '|', Color: core.ColorYellow}, dst.GetCell(19, 5))
	assert.Equal(t, core.Cell{Rune: '|', Color: core.ColorRed}, dst.GetCell(19, 4))
}

func TestRenderOverlays(t *testing.T) {
	setup(t, calmConfig)
	g := New()
	g.Reset(testRuntime)

	g.Step(frame(core.ActionPause))
	dst := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
	g.Render(dst)
	assert.Contains(t, dst.String(), "PAUSED")

	g.Step(frame(core.ActionPause))
	g.Step(frame())
	g.Step(frame())
	g.Render(dst)
	assert.Contains(t, dst.String(), "GAME OVER")
}

func TestMissingLayoutFallsBack(t *testing.T) {
	setup(t, calmConfig)
	SetLayout("does-not-exist")

	g := New()
	g.Reset(testRuntime)
	assert.Equal(t, "classic", g.Layout().ID)
}

func TestUseLayoutOverridesDefault(t *testing.T) {
	setup(t, calmConfig)
	SetLayout("")

	g := New()
	g.UseLayout("duel")
	g.Reset(testRuntime)
	assert.Equal(t, "duel", g.Layout().ID)

	other := New()
	other.Reset(testRuntime)
	assert.Equal(t, "classic", other.Layout().ID)
}
