package invaders

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/engine"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Layout       string
	Wave         int
	Score        uint64
	Player       engine.Position
	Direction    engine.Dir
	LivingAliens int
	MoveEvery    int
	PlayerShots  int
	EnemyShots   int
	State        GameStateType

	// Board hashes every cell's terrain and occupant.
	Board uint64
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.eng.Status() == engine.StatusOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:         g.tick,
		Mode:         g.ID(),
		Layout:       g.layout.ID,
		Wave:         g.eng.Wave(),
		Score:        g.eng.Score(),
		Player:       g.eng.PlayerPosition(),
		Direction:    g.eng.Direction(),
		LivingAliens: g.eng.LivingAliens(),
		MoveEvery:    g.eng.Formation().MoveEvery(),
		PlayerShots:  g.eng.ActiveShots(engine.OwnerPlayer),
		EnemyShots:   g.eng.ActiveShots(engine.OwnerEnemy),
		State:        state,
		Board:        g.boardHash(),
	}
}

// boardHash folds the rendered glyph of every cell into one value.
func (g *Game) boardHash() uint64 {
	h := fnv.New64a()
	for p := range g.eng.Positions() {
		r, _ := g.glyphAt(p)
		fmt.Fprintf(h, "%c", r)
	}
	g.eng.EachShot(func(s engine.Shot) {
		fmt.Fprintf(h, ";%d:%d:%d", s.Owner, s.Pos.Row, s.Pos.Col)
	})
	return h.Sum64()
}
