// Package layouts provides Invaders board templates: the layouts compiled
// into the binary and user layouts loaded from a directory of YAML files.
package layouts

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/engine"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultID is the layout used when none is selected.
const DefaultID = "classic"

// builtinOrder fixes the order built-in layouts are listed in.
var builtinOrder = []string{"classic", "mini", "bunkers"}

// Layout is a named board template.
type Layout struct {
	ID            string
	Name          string
	Description   string
	FormationCols int
	DangerRow     int // 0 means the player's start row
	Board         string
	Builtin       bool
	FilePath      string
}

// yamlLayout is the on-disk shape of a layout file.
type yamlLayout struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Description   string `yaml:"description,omitempty"`
	FormationCols int    `yaml:"formation_cols,omitempty"`
	DangerRow     int    `yaml:"danger_row,omitempty"`
	Board         string `yaml:"board"`
}

// Parse decodes a YAML layout document and validates its board.
func Parse(data []byte) (Layout, error) {
	var yl yamlLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	l := Layout{
		ID:            strings.TrimSpace(yl.ID),
		Name:          strings.TrimSpace(yl.Name),
		Description:   strings.TrimSpace(yl.Description),
		FormationCols: yl.FormationCols,
		DangerRow:     yl.DangerRow,
		Board:         yl.Board,
	}
	if l.ID == "" {
		return Layout{}, fmt.Errorf("layout has no id")
	}
	if l.Name == "" {
		l.Name = l.ID
	}
	if l.FormationCols < 0 || l.DangerRow < 0 {
		return Layout{}, fmt.Errorf("layout %s: negative formation_cols or danger_row", l.ID)
	}

	built, err := l.Build()
	if err != nil {
		return Layout{}, err
	}
	if l.DangerRow >= built.Terrain.Height() {
		return Layout{}, fmt.Errorf("layout %s: danger_row %d outside a %d-row board",
			l.ID, l.DangerRow, built.Terrain.Height())
	}
	return l, nil
}

// Build parses the board into a fresh engine layout.
func (l Layout) Build() (*engine.Layout, error) {
	built, err := engine.ParseLayout(l.Board, l.FormationCols)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.ID, err)
	}
	return built, nil
}

// EngineConfig returns cfg with this layout's danger row applied.
func (l Layout) EngineConfig(cfg engine.Config) engine.Config {
	if l.DangerRow > 0 {
		cfg.DangerRow = l.DangerRow
	}
	return cfg
}

// Size returns the board dimensions without building the full layout.
func (l Layout) Size() (width, height int) {
	lines := strings.Split(strings.Trim(l.Board, "\n"), "\n")
	for _, line := range lines {
		width = max(width, len([]rune(strings.TrimRight(line, "\r"))))
	}
	return width, len(lines)
}

var builtins = loadBuiltins()

// loadBuiltins parses the embedded layouts. A corrupt embedded layout is a
// build defect, so it panics.
func loadBuiltins() []Layout {
	out := make([]Layout, 0, len(builtinOrder))
	for _, id := range builtinOrder {
		data, err := builtinFS.ReadFile(path.Join("builtin", id+".yaml"))
		if err != nil {
			panic(fmt.Sprintf("layouts: missing builtin %s: %v", id, err))
		}
		l, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("layouts: builtin %s: %v", id, err))
		}
		l.Builtin = true
		out = append(out, l)
	}
	return out
}

// Builtin returns the layouts compiled into the binary in display order.
func Builtin() []Layout {
	out := make([]Layout, len(builtins))
	copy(out, builtins)
	return out
}

// Get returns the built-in layout with the given ID.
func Get(id string) (Layout, bool) {
	for _, l := range builtins {
		if l.ID == id {
			return l, true
		}
	}
	return Layout{}, false
}

// Default returns the default built-in layout.
func Default() Layout {
	l, _ := Get(DefaultID)
	return l
}
