package engine

// Owner tags who fired a shot.
type Owner uint8

const (
	OwnerPlayer Owner = iota
	OwnerEnemy
)

// String returns a human-readable name for the owner.
func (o Owner) String() string {
	if o == OwnerEnemy {
		return "enemy"
	}
	return "player"
}

// Shot is one projectile slot. Pos and Dir are meaningless while inactive.
type Shot struct {
	Pos    Position
	Dir    Dir
	Owner  Owner
	Active bool

	// fresh marks a shot fired during the current update; it starts
	// moving on the next one.
	fresh bool
}

// Pool is a fixed arena of shots split into per-owner sub-pools. Player
// slots come first, so iteration visits player shots before enemy shots.
type Pool struct {
	shots  []Shot
	split  int // index of the first enemy slot
	active [2]int
}

// NewPool allocates a pool with the given per-owner capacities.
func NewPool(playerCap, enemyCap int) *Pool {
	playerCap = max(playerCap, 0)
	enemyCap = max(enemyCap, 0)
	shots := make([]Shot, playerCap+enemyCap)
	for i := playerCap; i < len(shots); i++ {
		shots[i].Owner = OwnerEnemy
	}
	return &Pool{shots: shots, split: playerCap}
}

// Cap returns the number of slots reserved for owner.
func (p *Pool) Cap(owner Owner) int {
	if owner == OwnerEnemy {
		return len(p.shots) - p.split
	}
	return p.split
}

// Active returns how many of owner's shots are in flight.
func (p *Pool) Active(owner Owner) int {
	return p.active[owner]
}

// Fire activates the first free slot in owner's sub-pool. Returns false if
// every slot is busy. Cap policy belongs to the caller.
func (p *Pool) Fire(owner Owner, origin Position, dir Dir) bool {
	lo, hi := p.bounds(owner)
	for i := lo; i < hi; i++ {
		s := &p.shots[i]
		if s.Active {
			continue
		}
		s.Pos = origin
		s.Dir = dir
		s.Active = true
		s.fresh = true
		p.active[owner]++
		return true
	}
	return false
}

// Advance moves every active shot one cell along its direction. Shots that
// would leave the width x height board are retired instead.
func (p *Pool) Advance(width, height int) {
	for i := range p.shots {
		s := &p.shots[i]
		if !s.Active {
			continue
		}
		if s.fresh {
			s.fresh = false
			continue
		}
		next := s.Pos.Neighbor(s.Dir)
		if !next.IsLegal(width, height) {
			p.deactivate(i)
			continue
		}
		s.Pos = next
	}
}

// ActiveAt reports whether any active shot occupies pos.
func (p *Pool) ActiveAt(pos Position) bool {
	_, ok := p.OwnerAt(pos)
	return ok
}

// OwnerAt returns the owner of the first active shot at pos.
func (p *Pool) OwnerAt(pos Position) (Owner, bool) {
	for i := range p.shots {
		if p.shots[i].Active && p.shots[i].Pos == pos {
			return p.shots[i].Owner, true
		}
	}
	return OwnerPlayer, false
}

// Each calls fn for every active shot in pool order with the shot's slot
// index. fn may retire the shot through Deactivate.
func (p *Pool) Each(fn func(i int, s Shot)) {
	for i := range p.shots {
		if p.shots[i].Active {
			fn(i, p.shots[i])
		}
	}
}

// Deactivate retires slot i. Retiring an inactive slot is a no-op, so the
// owner counter drops exactly once per shot.
func (p *Pool) Deactivate(i int) {
	if i < 0 || i >= len(p.shots) {
		return
	}
	p.deactivate(i)
}

// Clear retires every shot.
func (p *Pool) Clear() {
	for i := range p.shots {
		p.shots[i].Active = false
		p.shots[i].fresh = false
	}
	p.active = [2]int{}
}

func (p *Pool) deactivate(i int) {
	s := &p.shots[i]
	if !s.Active {
		return
	}
	s.Active = false
	s.fresh = false
	p.active[s.Owner]--
}

func (p *Pool) bounds(owner Owner) (int, int) {
	if owner == OwnerEnemy {
		return p.split, len(p.shots)
	}
	return 0, p.split
}
