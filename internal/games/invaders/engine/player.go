package engine

// Player is the defender at the bottom of the board.
type Player struct {
	Pos      Position
	MaxShots int
	// Facing is the direction shots travel, away from the formation.
	Facing Dir
}

func newPlayer(pos Position, maxShots int) Player {
	return Player{Pos: pos, MaxShots: maxShots, Facing: North}
}

// Move steps the player one cell in d unless the destination is off the
// board or a barrier. Returns whether the player moved.
func (pl *Player) Move(d Dir, t *Terrain) bool {
	next := pl.Pos.Neighbor(d)
	if !t.Contains(next) || t.At(next) == CellBarrier {
		return false
	}
	pl.Pos = next
	return true
}

// TryFire launches a shot from the cell ahead of the player. Requests at the
// shot cap, or with the cell ahead off the board, are dropped.
func (pl *Player) TryFire(pool *Pool, t *Terrain) bool {
	if pool.Active(OwnerPlayer) >= pl.MaxShots {
		return false
	}
	origin := pl.Pos.Neighbor(pl.Facing)
	if !t.Contains(origin) {
		return false
	}
	return pool.Fire(OwnerPlayer, origin, pl.Facing)
}
