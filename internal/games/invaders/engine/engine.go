package engine

import "iter"

// Status is the engine's top-level state.
type Status uint8

const (
	StatusNormal Status = iota
	StatusOver
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	if s == StatusOver {
		return "over"
	}
	return "normal"
}

// Config holds engine tunables. Non-positive tick, shot and move fields fall
// back to DefaultConfig; BonusPoints is taken as given.
type Config struct {
	TickDivider    int    // host ticks per update
	PlayerMaxShots int    // concurrent player shots
	EnemyMaxShots  int    // concurrent formation shots
	MoveEvery      int    // updates between formation steps
	DangerRow      int    // 0 means the player's start row
	BonusPoints    uint64 // score for collecting a bonus dot
}

// DefaultConfig returns the classic tunables.
func DefaultConfig() Config {
	return Config{
		TickDivider:    1,
		PlayerMaxShots: 3,
		EnemyMaxShots:  1,
		MoveEvery:      1,
		BonusPoints:    5,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickDivider <= 0 {
		c.TickDivider = d.TickDivider
	}
	if c.PlayerMaxShots <= 0 {
		c.PlayerMaxShots = d.PlayerMaxShots
	}
	if c.EnemyMaxShots <= 0 {
		c.EnemyMaxShots = d.EnemyMaxShots
	}
	if c.MoveEvery <= 0 {
		c.MoveEvery = d.MoveEvery
	}
	return c
}

// Result reports what happened during one update.
type Result struct {
	Move        MoveOutcome
	PlayerFired bool
	EnemyFired  bool
	Kills       int
	BarriersHit int
	Bonus       bool // player collected a bonus dot
	PlayerHit   bool
	Breached    bool // formation reached the danger row
	Cleared     bool // no living aliens remain
}

// Engine owns one game's mutable state. It is not safe for concurrent use;
// the host serializes input and tick calls.
type Engine struct {
	layout    *Layout
	cfg       Config
	terrain   Terrain
	player    Player
	formation *Formation
	shots     *Pool

	score  uint64
	wave   int
	status Status

	pendingDir Dir
	hasMove    bool
	fire       bool
	countdown  int
}

// New creates an engine for layout and starts the first round.
func New(layout *Layout, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	if cfg.DangerRow <= 0 {
		cfg.DangerRow = layout.PlayerStart.Row
	}
	w, h := layout.Terrain.Width(), layout.Terrain.Height()
	e := &Engine{
		layout: layout,
		cfg:    cfg,
		formation: newFormation(w, h, FormationConfig{
			MaxShots:  cfg.EnemyMaxShots,
			MoveEvery: cfg.MoveEvery,
			DangerRow: cfg.DangerRow,
		}),
		shots: NewPool(cfg.PlayerMaxShots, cfg.EnemyMaxShots),
	}
	e.Reset()
	return e
}

// Reset starts over from the template and zeroes the score.
func (e *Engine) Reset() {
	e.setUp()
	e.score = 0
	e.wave = 1
}

// NextScreen brings in a fresh formation and terrain, keeping the score.
func (e *Engine) NextScreen() {
	e.setUp()
	e.wave++
}

func (e *Engine) setUp() {
	e.terrain.copyFrom(&e.layout.Terrain)
	e.player = newPlayer(e.layout.PlayerStart, e.cfg.PlayerMaxShots)
	e.formation.load(e.layout.Formation)
	e.shots.Clear()
	e.status = StatusNormal
	e.hasMove = false
	e.fire = false
	e.countdown = e.cfg.TickDivider
}

// SubmitDirection buffers a lateral move for the next update. Only East
// and West are accepted; a later call overwrites an earlier one.
func (e *Engine) SubmitDirection(d Dir) {
	if d != East && d != West {
		return
	}
	e.pendingDir = d
	e.hasMove = true
}

// SubmitFire buffers a fire request for the next update.
func (e *Engine) SubmitFire() {
	e.fire = true
}

// SubmitRestart resets the game if it is over. Returns whether it did.
func (e *Engine) SubmitRestart() bool {
	if e.status != StatusOver {
		return false
	}
	e.Reset()
	return true
}

// Tick counts down the update gate and runs Update when it expires.
func (e *Engine) Tick() (Result, bool) {
	e.countdown--
	if e.countdown > 0 {
		return Result{}, false
	}
	e.countdown = e.cfg.TickDivider
	return e.Update(), true
}

// Update advances the simulation by one step: player move, player fire,
// formation step and fire, shot flight, then collisions. It does nothing
// once the game is over.
func (e *Engine) Update() Result {
	var r Result
	if e.status == StatusOver {
		return r
	}

	if e.hasMove {
		if e.player.Move(e.pendingDir, &e.terrain) && e.terrain.At(e.player.Pos) == CellBonus {
			e.terrain.Set(e.player.Pos, CellEmpty)
			e.score += e.cfg.BonusPoints
			r.Bonus = true
		}
	}
	e.hasMove = false

	if e.fire {
		r.PlayerFired = e.player.TryFire(e.shots, &e.terrain)
		e.fire = false
	}

	r.Move = e.formation.Advance()
	if r.Move == MoveBreached {
		e.status = StatusOver
		r.Breached = true
		return r
	}
	r.EnemyFired = e.formation.TryFire(e.shots, e.player.Pos)

	e.shots.Advance(e.terrain.Width(), e.terrain.Height())
	e.shots.Each(func(i int, s Shot) {
		e.resolve(i, s, &r)
	})

	r.Cleared = e.formation.Living() == 0
	return r
}

// resolve applies the first matching collision for one shot: barrier, then
// player, then living alien. Enemy shots pass through aliens.
func (e *Engine) resolve(i int, s Shot, r *Result) {
	switch {
	case e.terrain.At(s.Pos) == CellBarrier:
		e.terrain.Set(s.Pos, CellEmpty)
		e.shots.Deactivate(i)
		r.BarriersHit++
	case s.Pos == e.player.Pos:
		e.status = StatusOver
		e.shots.Deactivate(i)
		r.PlayerHit = true
	case s.Owner == OwnerPlayer:
		ref, ok := e.formation.LivingAt(s.Pos)
		if ok && e.formation.Kill(ref) {
			e.score++
			e.shots.Deactivate(i)
			r.Kills++
		}
	}
}

// Status returns the current status.
func (e *Engine) Status() Status { return e.status }

// Score returns the current score.
func (e *Engine) Score() uint64 { return e.score }

// Wave returns the 1-based screen number.
func (e *Engine) Wave() int { return e.wave }

// Width returns the board width.
func (e *Engine) Width() int { return e.terrain.Width() }

// Height returns the board height.
func (e *Engine) Height() int { return e.terrain.Height() }

// Cell returns the terrain at p.
func (e *Engine) Cell(p Position) Cell { return e.terrain.At(p) }

// IsPlayerAt reports whether the player occupies p.
func (e *Engine) IsPlayerAt(p Position) bool { return e.player.Pos == p }

// PlayerPosition returns the player's cell.
func (e *Engine) PlayerPosition() Position { return e.player.Pos }

// LivingAlienAt returns the living alien at p, if any.
func (e *Engine) LivingAlienAt(p Position) (AlienRef, bool) {
	return e.formation.LivingAt(p)
}

// IsShotAt reports whether any active shot occupies p.
func (e *Engine) IsShotAt(p Position) bool { return e.shots.ActiveAt(p) }

// ShotOwnerAt returns who fired the shot at p, if any.
func (e *Engine) ShotOwnerAt(p Position) (Owner, bool) { return e.shots.OwnerAt(p) }

// ActiveShots returns how many of owner's shots are in flight.
func (e *Engine) ActiveShots(owner Owner) int { return e.shots.Active(owner) }

// EachShot calls fn for every active shot in pool order.
func (e *Engine) EachShot(fn func(Shot)) {
	e.shots.Each(func(_ int, s Shot) { fn(s) })
}

// Direction returns the formation's lateral direction.
func (e *Engine) Direction() Dir { return e.formation.Direction() }

// LivingAliens returns the number of living aliens.
func (e *Engine) LivingAliens() int { return e.formation.Living() }

// Formation exposes the formation for inspection and speed tuning.
func (e *Engine) Formation() *Formation { return e.formation }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// Positions yields every board position in row-major order. Each call
// returns a fresh sequence.
func (e *Engine) Positions() iter.Seq[Position] {
	w, h := e.terrain.Width(), e.terrain.Height()
	return func(yield func(Position) bool) {
		for row := range h {
			for col := range w {
				if !yield(P(row, col)) {
					return
				}
			}
		}
	}
}
