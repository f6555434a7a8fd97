package engine

import "github.com/kamstrup/intmap"

// Alien is one formation slot. Dead aliens keep their slot and position but
// are skipped by movement, firing and collision.
type Alien struct {
	Pos   Position
	Alive bool
}

// AlienRef addresses a formation slot.
type AlienRef struct {
	Row int
	Col int
}

// MoveOutcome describes what the formation did on one update.
type MoveOutcome uint8

const (
	MoveIdle     MoveOutcome = iota // waiting for its move interval
	MoveLateral                     // stepped sideways
	MoveDescend                     // hit a wall, reversed and dropped a row
	MoveBreached                    // a descent would reach the danger row; nothing committed
)

// Formation is the fixed grid of aliens moving and firing as one unit.
type Formation struct {
	aliens    [][]Alien
	dir       Dir
	maxShots  int
	moveEvery int
	ticker    int
	dangerRow int

	width  int
	height int
	living int
	index  *intmap.Map[uint32, int] // packed position -> row*cols+col
}

// FormationConfig holds the tunables of a formation.
type FormationConfig struct {
	MaxShots  int // concurrent enemy shots
	MoveEvery int // updates between steps, minimum 1
	DangerRow int // a descent onto this row or below ends the game
}

func newFormation(width, height int, cfg FormationConfig) *Formation {
	return &Formation{
		dir:       East,
		maxShots:  cfg.MaxShots,
		moveEvery: max(cfg.MoveEvery, 1),
		dangerRow: cfg.DangerRow,
		width:     width,
		height:    height,
		index:     intmap.New[uint32, int](128),
	}
}

// load copies the template slots into the formation, reusing storage.
func (f *Formation) load(slots [][]Alien) {
	if len(f.aliens) != len(slots) || (len(slots) > 0 && len(f.aliens[0]) != len(slots[0])) {
		f.aliens = make([][]Alien, len(slots))
		for r := range slots {
			f.aliens[r] = make([]Alien, len(slots[r]))
		}
	}
	for r := range slots {
		copy(f.aliens[r], slots[r])
	}
	f.dir = East
	f.ticker = 0
	f.reindex()
}

// Direction returns the shared lateral direction.
func (f *Formation) Direction() Dir { return f.dir }

// DangerRow returns the row that ends the game when reached.
func (f *Formation) DangerRow() int { return f.dangerRow }

// MoveEvery returns the number of updates between formation steps.
func (f *Formation) MoveEvery() int { return f.moveEvery }

// SetMoveEvery changes the step interval. Values below 1 clamp to 1.
func (f *Formation) SetMoveEvery(n int) {
	f.moveEvery = max(n, 1)
}

// Living returns the number of living aliens.
func (f *Formation) Living() int { return f.living }

// Rows returns the formation row count.
func (f *Formation) Rows() int { return len(f.aliens) }

// Cols returns the formation column count.
func (f *Formation) Cols() int {
	if len(f.aliens) == 0 {
		return 0
	}
	return len(f.aliens[0])
}

// Alien returns the slot addressed by ref.
func (f *Formation) Alien(ref AlienRef) Alien {
	return f.aliens[ref.Row][ref.Col]
}

// LivingAt returns the living alien occupying p, if any.
func (f *Formation) LivingAt(p Position) (AlienRef, bool) {
	if !p.IsLegal(f.width, f.height) {
		return AlienRef{}, false
	}
	slot, ok := f.index.Get(p.key(f.width))
	if !ok {
		return AlienRef{}, false
	}
	cols := f.Cols()
	return AlienRef{Row: slot / cols, Col: slot % cols}, true
}

// Kill marks the alien at ref dead. Killing a dead alien is a no-op and
// returns false.
func (f *Formation) Kill(ref AlienRef) bool {
	a := &f.aliens[ref.Row][ref.Col]
	if !a.Alive {
		return false
	}
	a.Alive = false
	f.living--
	f.index.Del(a.Pos.key(f.width))
	return true
}

// Advance runs one movement step. Every living alien moves laterally; if any
// of them would leave the board, the formation reverses and drops one row
// instead. A drop that would reach the danger row commits nothing.
func (f *Formation) Advance() MoveOutcome {
	if f.living == 0 {
		return MoveIdle
	}
	f.ticker++
	if f.ticker < f.moveEvery {
		return MoveIdle
	}
	f.ticker = 0

	if f.allCanStep(f.dir) {
		f.shift(f.dir)
		return MoveLateral
	}

	down := f.descentDir()
	for r := range f.aliens {
		for c := range f.aliens[r] {
			a := f.aliens[r][c]
			if !a.Alive {
				continue
			}
			next := a.Pos.Neighbor(down)
			if next.Row >= f.dangerRow || !next.IsLegal(f.width, f.height) {
				return MoveBreached
			}
		}
	}

	f.dir = f.dir.Reverse()
	f.shift(down)
	return MoveDescend
}

// TryFire launches one enemy shot while under the shot cap. The shooter is
// the first living alien in the player's column, else the first living
// alien, both in row-major slot order.
func (f *Formation) TryFire(pool *Pool, target Position) bool {
	if pool.Active(OwnerEnemy) >= f.maxShots {
		return false
	}
	shooter, ok := f.pickShooter(target)
	if !ok {
		return false
	}
	origin := shooter.Pos.Neighbor(South)
	if !origin.IsLegal(f.width, f.height) {
		return false
	}
	return pool.Fire(OwnerEnemy, origin, South)
}

func (f *Formation) pickShooter(target Position) (Alien, bool) {
	var fallback Alien
	found := false
	for r := range f.aliens {
		for c := range f.aliens[r] {
			a := f.aliens[r][c]
			if !a.Alive {
				continue
			}
			if a.Pos.Col == target.Col {
				return a, true
			}
			if !found {
				fallback = a
				found = true
			}
		}
	}
	return fallback, found
}

// descentDir turns the lateral heading toward the bottom of the board.
func (f *Formation) descentDir() Dir {
	if f.dir == East {
		return f.dir.Right()
	}
	return f.dir.Left()
}

func (f *Formation) allCanStep(d Dir) bool {
	for r := range f.aliens {
		for c := range f.aliens[r] {
			a := f.aliens[r][c]
			if a.Alive && !a.Pos.Neighbor(d).IsLegal(f.width, f.height) {
				return false
			}
		}
	}
	return true
}

func (f *Formation) shift(d Dir) {
	for r := range f.aliens {
		for c := range f.aliens[r] {
			if f.aliens[r][c].Alive {
				f.aliens[r][c].Pos = f.aliens[r][c].Pos.Neighbor(d)
			}
		}
	}
	f.reindex()
}

func (f *Formation) reindex() {
	f.index.Clear()
	f.living = 0
	cols := f.Cols()
	for r := range f.aliens {
		for c := range f.aliens[r] {
			a := f.aliens[r][c]
			if !a.Alive {
				continue
			}
			f.living++
			f.index.Put(a.Pos.key(f.width), r*cols+c)
		}
	}
}
