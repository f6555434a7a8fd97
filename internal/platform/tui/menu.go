package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layouts"
	"github.com/vovakirdan/tui-invaders/internal/registry"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int // Best recorded score, 0 if none
}

// LayoutChoice is one board the player can pick.
type LayoutChoice struct {
	ID   string
	Name string
	Size string
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	layouts        []LayoutChoice
	cursor         int
	layoutCursor   int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a new menu model. layoutDir is searched for user
// layouts; layoutID preselects a layout when it exists.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, layoutDir, layoutID string) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	catalog, err := layouts.Catalog(layoutDir)
	if err != nil {
		log.Warn("could not load user layouts", "dir", layoutDir, "err", err)
	}
	choices := make([]LayoutChoice, 0, len(catalog))
	layoutCursor := 0
	for i, l := range catalog {
		w, h := l.Size()
		choices = append(choices, LayoutChoice{
			ID:   l.ID,
			Name: l.Name,
			Size: fmt.Sprintf("%dx%d", w, h),
		})
		if l.ID == layoutID {
			layoutCursor = i
		}
	}

	return MenuModel{
		items:        items,
		layouts:      choices,
		layoutCursor: layoutCursor,
		width:        cfg.ScreenW,
		height:       cfg.ScreenH,
		config:       cfg,
		keyMapper:    NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if n := len(m.layouts); n > 0 {
			m.layoutCursor = (m.layoutCursor + n - 1) % n
		}

	case MenuActionRight:
		if n := len(m.layouts); n > 0 {
			m.layoutCursor = (m.layoutCursor + 1) % n
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  I N V A D E R S  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + item.Title
		if item.Best > 0 {
			line += fmt.Sprintf("  (best %d)", item.Best)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if layout, ok := m.SelectedLayout(); ok {
		line := fmt.Sprintf("< Layout: %s (%s) >", layout.Name, layout.Size)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Game  |  Left/Right: Layout  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// SelectedLayout returns the layout under the layout cursor.
func (m MenuModel) SelectedLayout() (LayoutChoice, bool) {
	if len(m.layouts) == 0 {
		return LayoutChoice{}, false
	}
	return m.layouts[m.layoutCursor], true
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := lipgloss.Width(text)
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	LayoutID        string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// result summarizes the menu state once it has exited.
func (m MenuModel) result() MenuResult {
	res := MenuResult{Config: m.Config()}
	if layout, ok := m.SelectedLayout(); ok {
		res.LayoutID = layout.ID
	}

	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.IsQuitting(), m.Selected() == nil:
		res.Quit = true
	default:
		res.GameID = m.Selected().GameID
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, layoutDir, layoutID string) (MenuResult, error) {
	model := NewMenuModel(store, cfg, layoutDir, layoutID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	return m.result(), nil
}
