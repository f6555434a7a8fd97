// Package engine implements the Invaders simulation: terrain, player,
// enemy formation, projectiles and the per-tick update that resolves them.
// It performs no I/O and knows nothing about terminals or timers; the host
// feeds it abstract inputs and reads back queryable state.
package engine

import "fmt"

// Dir is one of the four grid directions.
type Dir uint8

const (
	North Dir = iota
	South
	East
	West
)

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Left returns the direction rotated 90 degrees counter-clockwise.
func (d Dir) Left() Dir {
	switch d {
	case North:
		return West
	case South:
		return East
	case East:
		return North
	default:
		return South
	}
}

// Right returns the direction rotated 90 degrees clockwise.
func (d Dir) Right() Dir {
	switch d {
	case North:
		return East
	case South:
		return West
	case East:
		return South
	default:
		return North
	}
}

// String returns a human-readable name for the direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Position is a cell on the board. Row grows downward, Col grows rightward.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// IsLegal reports whether the position lies inside a width x height board.
func (p Position) IsLegal(width, height int) bool {
	return p.Col >= 0 && p.Col < width && p.Row >= 0 && p.Row < height
}

// Neighbor returns the adjacent cell in direction d. No bounds check.
func (p Position) Neighbor(d Dir) Position {
	switch d {
	case North:
		return Position{Row: p.Row - 1, Col: p.Col}
	case South:
		return Position{Row: p.Row + 1, Col: p.Col}
	case East:
		return Position{Row: p.Row, Col: p.Col + 1}
	default:
		return Position{Row: p.Row, Col: p.Col - 1}
	}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// key packs a position into an index key. Only valid for legal positions.
func (p Position) key(width int) uint32 {
	return uint32(p.Row*width + p.Col) //#nosec G115 -- legal positions are non-negative
}
