// Package invaders hosts the Invaders engine on the arcade platform: it maps
// platform actions to engine inputs, paces engine updates against the host
// tick, scales formation speed between waves and renders engine state.
package invaders

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/engine"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layouts"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// Mode selects what happens when a formation is wiped out.
type Mode int

const (
	ModeWaves  Mode = iota // A fresh formation arrives; the score carries over
	ModeSingle             // Clearing the formation wins the game
)

// hudHeight is the number of screen rows above the board.
const hudHeight = 1

var (
	// configPath stores the custom config path set via CLI
	configPath string

	// difficultyPreset stores the difficulty preset set via CLI
	difficultyPreset config.DifficultyPreset

	// layoutID and layoutDir select the board for new games
	layoutID  = layouts.DefaultID
	layoutDir = layouts.DefaultUserDir()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, ok := config.ParsePreset(preset)
	if !ok {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLayout selects the layout for games created after this call.
func SetLayout(id string) {
	layoutID = id
}

// SetLayoutDir sets the directory searched for user layouts.
func SetLayoutDir(dir string) {
	layoutDir = dir
}

// Game adapts the Invaders engine to registry.Game.
type Game struct {
	mode     Mode
	layoutID string

	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	layout     layouts.Layout
	eng        *engine.Engine
	logger     *log.Logger

	tick     uint64
	screenW  int
	screenH  int
	paused   bool
	won      bool
	tooSmall bool
}

// New creates a new Invaders game in wave mode.
func New() *Game {
	return &Game{mode: ModeWaves, layoutID: layoutID}
}

// NewSingle creates a new Invaders game that ends after one formation.
func NewSingle() *Game {
	return &Game{mode: ModeSingle, layoutID: layoutID}
}

func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
	registry.Register("invaders_single", func() registry.Game {
		return NewSingle()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeSingle {
		return "invaders_single"
	}
	return "invaders"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSingle {
		return "Invaders (Single Screen)"
	}
	return "Invaders"
}

// UseLayout overrides the layout for this instance. It takes effect on the
// next Reset.
func (g *Game) UseLayout(id string) {
	g.layoutID = id
}

// Reset loads configuration and layout and starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.logger = log.WithPrefix(g.ID())

	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultInvadersConfig()
	}
	if difficultyPreset != "" {
		config.ApplyInvadersPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	layout, built := g.loadLayout()
	g.layout = layout
	g.eng = engine.New(built, layout.EngineConfig(g.engineConfig()))

	g.tick = 0
	g.paused = false
	g.won = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
	g.applyDifficulty()

	g.logger.Debug("game reset", "layout", layout.ID, "width", g.eng.Width(), "height", g.eng.Height())
}

// loadLayout resolves the selected layout, falling back to the default
// built-in layout when it cannot be loaded.
func (g *Game) loadLayout() (layouts.Layout, *engine.Layout) {
	layout, err := layouts.Resolve(g.layoutID, layoutDir)
	if err == nil {
		built, buildErr := layout.Build()
		if buildErr == nil {
			return layout, built
		}
		err = buildErr
	}
	g.logger.Warn("falling back to default layout", "layout", g.layoutID, "err", err)

	layout = layouts.Default()
	built, err := layout.Build()
	if err != nil {
		panic(err) // builtins are validated at package init
	}
	return layout, built
}

// engineConfig maps the YAML config onto engine tunables.
func (g *Game) engineConfig() engine.Config {
	return engine.Config{
		TickDivider:    g.cfg.Engine.TickDivider,
		PlayerMaxShots: g.cfg.Engine.PlayerMaxShots,
		EnemyMaxShots:  g.cfg.Engine.EnemyMaxShots,
		MoveEvery:      g.cfg.Formation.MoveEvery,
		BonusPoints:    uint64(max(g.cfg.Engine.BonusPoints, 0)), //#nosec G115 -- clamped non-negative
	}
}

// applyDifficulty sets the formation step interval for the current wave.
func (g *Game) applyDifficulty() {
	interval := g.difficulty.Interval(
		g.cfg.Formation.MoveEvery,
		g.cfg.Formation.MinMoveEvery,
		g.score(),
		g.eng.Wave(),
	)
	g.eng.Formation().SetMoveEvery(interval)
}

// Resize adapts the board placement to a new screen size without
// touching game progress.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.eng == nil {
		return
	}
	g.tooSmall = width < g.eng.Width() || height < g.eng.Height()+hudHeight
}

// Step advances the game by one host tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.isOver() {
		g.paused = !g.paused
	}

	if g.paused || g.tooSmall || g.won {
		return core.StepResult{State: g.State()}
	}

	switch in.Last {
	case core.ActionLeft:
		g.eng.SubmitDirection(engine.West)
	case core.ActionRight:
		g.eng.SubmitDirection(engine.East)
	}
	if in.Has(core.ActionFire) {
		g.eng.SubmitFire()
	}

	res, ran := g.eng.Tick()
	if ran {
		g.handleResult(res)
	}
	return core.StepResult{State: g.State(), Updated: ran}
}

// restart starts over after a loss or a win. It is ignored mid-game.
func (g *Game) restart() {
	switch {
	case g.won:
		g.eng.Reset()
		g.won = false
	case g.eng.SubmitRestart():
	default:
		return
	}
	g.paused = false
	g.applyDifficulty()
	g.logger.Debug("restarted")
}

// handleResult reacts to the outcome of one engine update.
func (g *Game) handleResult(res engine.Result) {
	if g.eng.Status() == engine.StatusOver {
		cause := "shot"
		if res.Breached {
			cause = "breach"
		}
		g.logger.Debug("game over", "cause", cause, "score", g.eng.Score(), "wave", g.eng.Wave())
		return
	}
	if !res.Cleared {
		return
	}

	if g.mode == ModeSingle {
		g.won = true
		g.logger.Debug("formation cleared, game won", "score", g.eng.Score())
		return
	}
	g.eng.NextScreen()
	g.applyDifficulty()
	g.logger.Debug("wave cleared",
		"wave", g.eng.Wave(),
		"score", g.eng.Score(),
		"move_every", g.eng.Formation().MoveEvery(),
	)
}

func (g *Game) isOver() bool {
	return g.won || g.eng.Status() == engine.StatusOver
}

func (g *Game) score() int {
	return int(min(g.eng.Score(), uint64(1<<31-1))) //#nosec G115 -- clamped to int32 range
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score(),
		Level:    g.eng.Wave(),
		GameOver: g.isOver(),
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Layout returns the layout the current game was built from.
func (g *Game) Layout() layouts.Layout {
	return g.layout
}
