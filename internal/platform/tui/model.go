package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// layoutSelectable is implemented by games that can be pointed at a board
// layout per instance.
type layoutSelectable interface {
	UseLayout(id string)
}

// GameOptions tune a GameModel for its host.
type GameOptions struct {
	// LayoutID is recorded with saved scores and passed to games that
	// support layouts. Empty means the game's default.
	LayoutID string

	// AllowBack lets B/Esc return to the menu while paused or after game over.
	AllowBack bool

	// Clipboard copies screenshots to the system clipboard as well.
	Clipboard bool
}

// GameModel is the Bubble Tea model for running one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	if opts.LayoutID != "" {
		if ls, ok := game.(layoutSelectable); ok {
			ls.UseLayout(opts.LayoutID)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// B or Esc returns to the menu when nothing is in progress
	if m.opts.AllowBack && (m.gameState.GameOver || m.gameState.Paused) &&
		m.keyMapper.MapKeyToMenuAction(msg) == MenuActionBack {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without resize support start over at the new size
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case !m.gameState.GameOver:
		m.scoreSaved = false
	case !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished game. Zero scores are not kept.
func (m *GameModel) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	rec := storage.Record{
		GameID: m.game.ID(),
		Layout: m.opts.LayoutID,
		Score:  m.gameState.Score,
		Wave:   m.gameState.Level,
	}
	if _, err := m.store.SaveScore(rec); err != nil {
		log.Warn("could not save score", "game", rec.GameID, "err", err)
	}
}

// saveScreenshot saves the current screen to a file and, when enabled,
// copies it to the clipboard.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)
	text := m.screen.String()

	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		log.Warn("screenshot not written", "path", path, "err", err)
	} else {
		log.Debug("screenshot saved", "path", path)
	}

	if m.opts.Clipboard && !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err != nil {
			log.Debug("screenshot not copied", "err", err)
		}
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state observed on the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a game.
// Returns true if the user asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
