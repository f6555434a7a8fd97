package engine

import (
	"fmt"
	"strings"
)

// Cell classifies one board tile.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellBarrier
	CellBonus
)

// Template symbols.
const (
	SymbolEmpty   = '.'
	SymbolBarrier = '#'
	SymbolBonus   = '*'
	SymbolPlayer  = '^'
	SymbolAlien   = '@'
)

// String returns a human-readable name for the cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellBarrier:
		return "barrier"
	case CellBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// Terrain is the static cell grid of one round. Barriers and bonus dots
// erode to Empty; nothing else ever changes.
type Terrain struct {
	width  int
	height int
	cells  []Cell
}

func newTerrain(width, height int) Terrain {
	return Terrain{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the board width in cells.
func (t *Terrain) Width() int { return t.width }

// Height returns the board height in cells.
func (t *Terrain) Height() int { return t.height }

// Contains reports whether p is on the board.
func (t *Terrain) Contains(p Position) bool {
	return p.IsLegal(t.width, t.height)
}

// At returns the cell at p. Off-board positions read as Empty.
func (t *Terrain) At(p Position) Cell {
	if !t.Contains(p) {
		return CellEmpty
	}
	return t.cells[p.Row*t.width+p.Col]
}

// Set overwrites the cell at p. Off-board positions are ignored.
func (t *Terrain) Set(p Position, c Cell) {
	if !t.Contains(p) {
		return
	}
	t.cells[p.Row*t.width+p.Col] = c
}

// Count returns how many cells hold c.
func (t *Terrain) Count(c Cell) int {
	n := 0
	for _, cell := range t.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// copyFrom makes t an exact copy of src, reusing t's storage when possible.
func (t *Terrain) copyFrom(src *Terrain) {
	if cap(t.cells) < len(src.cells) {
		t.cells = make([]Cell, len(src.cells))
	}
	t.cells = t.cells[:len(src.cells)]
	copy(t.cells, src.cells)
	t.width = src.width
	t.height = src.height
}

// LayoutError reports corrupt template data found while parsing a layout.
type LayoutError struct {
	Row    int
	Col    int
	Symbol rune
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Symbol != 0 {
		return fmt.Sprintf("layout: %s %q at row %d, col %d", e.Reason, e.Symbol, e.Row, e.Col)
	}
	return "layout: " + e.Reason
}

// Layout is a parsed board template: the initial terrain, the player start
// and the formation slots in row-major order.
type Layout struct {
	Terrain     Terrain
	PlayerStart Position
	// Formation holds one row per formation rank. A slot with Alive=false
	// was never filled by the template.
	Formation [][]Alien
}

// Rows returns the formation row count.
func (l *Layout) Rows() int { return len(l.Formation) }

// Cols returns the formation column count.
func (l *Layout) Cols() int {
	if len(l.Formation) == 0 {
		return 0
	}
	return len(l.Formation[0])
}

// ParseLayout builds a Layout from a textual template, one board row per
// line. formationCols sets how many aliens fill one formation row before
// wrapping; zero infers it from the first template row that holds an alien.
func ParseLayout(template string, formationCols int) (*Layout, error) {
	lines := strings.Split(strings.Trim(template, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}

	height := len(lines)
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	if width == 0 {
		return nil, &LayoutError{Reason: "empty template"}
	}

	if formationCols <= 0 {
		formationCols = inferFormationCols(lines)
	}

	layout := &Layout{Terrain: newTerrain(width, height)}
	var aliens []Position
	players := 0

	for row, line := range lines {
		for col, ch := range []rune(line) {
			p := P(row, col)
			switch ch {
			case SymbolEmpty:
				layout.Terrain.Set(p, CellEmpty)
			case SymbolBarrier:
				layout.Terrain.Set(p, CellBarrier)
			case SymbolBonus:
				layout.Terrain.Set(p, CellBonus)
			case SymbolPlayer:
				layout.PlayerStart = p
				players++
			case SymbolAlien:
				aliens = append(aliens, p)
			default:
				return nil, &LayoutError{Row: row, Col: col, Symbol: ch, Reason: "invalid symbol"}
			}
		}
	}

	if players != 1 {
		return nil, &LayoutError{Reason: fmt.Sprintf("expected exactly one player marker, found %d", players)}
	}
	if len(aliens) == 0 {
		return nil, &LayoutError{Reason: "template has no aliens"}
	}

	rows := (len(aliens) + formationCols - 1) / formationCols
	layout.Formation = make([][]Alien, rows)
	for r := range layout.Formation {
		layout.Formation[r] = make([]Alien, formationCols)
	}
	for i, p := range aliens {
		layout.Formation[i/formationCols][i%formationCols] = Alien{Pos: p, Alive: true}
	}

	return layout, nil
}

// MustParseLayout is like ParseLayout but panics on corrupt templates.
// Use it only for templates compiled into the binary.
func MustParseLayout(template string, formationCols int) *Layout {
	l, err := ParseLayout(template, formationCols)
	if err != nil {
		panic(err)
	}
	return l
}

// inferFormationCols counts the aliens on the first row that has any.
func inferFormationCols(lines []string) int {
	for _, line := range lines {
		if n := strings.Count(line, string(SymbolAlien)); n > 0 {
			return n
		}
	}
	return 1
}
