package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, template string, cfg Config) *Engine {
	t.Helper()
	l, err := ParseLayout(template, 0)
	require.NoError(t, err)
	return New(l, cfg)
}

// still keeps the formation parked so shots can be tracked in isolation.
var still = Config{MoveEvery: 1000}

func TestFreshGameFireOneTick(t *testing.T) {
	e := newEngine(t, smallBoard, Config{})
	require.Equal(t, StatusNormal, e.Status())
	require.Equal(t, uint64(0), e.Score())
	require.Equal(t, 1, e.Wave())

	e.SubmitFire()
	r := e.Update()

	assert.True(t, r.PlayerFired)
	assert.Equal(t, 1, e.ActiveShots(OwnerPlayer))
	ahead := e.PlayerPosition().Neighbor(North)
	owner, ok := e.ShotOwnerAt(ahead)
	require.True(t, ok, "shot should sit one cell ahead of the player")
	assert.Equal(t, OwnerPlayer, owner)
}

func TestPlayerMoveBlockedByBarrier(t *testing.T) {
	e := newEngine(t, "@.....\n......\n..#^..", still)
	start := e.PlayerPosition()

	for range 3 {
		e.SubmitDirection(West)
		e.Update()
		assert.Equal(t, start, e.PlayerPosition())
	}

	e.SubmitDirection(East)
	e.Update()
	assert.Equal(t, start.Neighbor(East), e.PlayerPosition())
}

func TestPlayerMoveBlockedByBoardEdge(t *testing.T) {
	e := newEngine(t, "@.....\n......\n^.....", still)
	e.SubmitDirection(West)
	e.Update()
	assert.Equal(t, P(2, 0), e.PlayerPosition())
}

func TestDirectionInputLastWriteWins(t *testing.T) {
	e := newEngine(t, "@.....\n......\n...^..", still)

	e.SubmitDirection(West)
	e.SubmitDirection(East)
	e.SubmitDirection(North) // ignored
	e.Update()
	assert.Equal(t, P(2, 4), e.PlayerPosition())

	e.Update()
	assert.Equal(t, P(2, 4), e.PlayerPosition(), "buffered move is consumed once")
}

func TestPlayerShotCap(t *testing.T) {
	template := "@.........\n" +
		"..........\n..........\n..........\n..........\n" +
		"..........\n..........\n..........\n..........\n" +
		".....^...."
	e := newEngine(t, template, still)

	for i := 1; i <= 3; i++ {
		e.SubmitFire()
		e.Update()
		assert.Equal(t, i, e.ActiveShots(OwnerPlayer))
	}

	e.SubmitFire()
	r := e.Update()
	assert.False(t, r.PlayerFired)
	assert.Equal(t, 3, e.ActiveShots(OwnerPlayer))
}

func TestShotLeavingBoardFreesSlot(t *testing.T) {
	e := newEngine(t, "@....\n.....\n..^..", still)

	e.SubmitFire()
	e.Update() // shot appears at row 1
	require.Equal(t, 1, e.ActiveShots(OwnerPlayer))

	e.Update() // row 0
	assert.Equal(t, 1, e.ActiveShots(OwnerPlayer))

	e.Update() // leaves the board
	assert.Equal(t, 0, e.ActiveShots(OwnerPlayer))

	e.Update()
	assert.Equal(t, 0, e.ActiveShots(OwnerPlayer))
}

func TestFormationFlipsAndDescends(t *testing.T) {
	e := newEngine(t, "..@@...\n.......\n.......\n.......\n.......\n...^...", Config{})

	flipped := false
	for range 10 {
		before := alienPositions(e)
		dir := e.Direction()
		r := e.Update()
		require.Equal(t, StatusNormal, e.Status())

		if e.Direction() == dir {
			assert.Equal(t, MoveLateral, r.Move)
			continue
		}

		assert.Equal(t, MoveDescend, r.Move)
		assert.Equal(t, dir.Reverse(), e.Direction())
		for _, p := range before {
			_, ok := e.LivingAlienAt(p.Neighbor(South))
			assert.True(t, ok, "alien from %v should drop one row", p)
		}
		flipped = true
		break
	}
	assert.True(t, flipped, "formation never reached the wall")
}

func TestFormationBreachEndsGame(t *testing.T) {
	e := newEngine(t, "......\n....@@\n...^..", Config{})

	r := e.Update()
	assert.True(t, r.Breached)
	assert.Equal(t, StatusOver, e.Status())
	_, ok := e.LivingAlienAt(P(1, 4))
	assert.True(t, ok, "losing tick leaves the formation on its previous row")
}

func TestDangerRowOverride(t *testing.T) {
	template := "....@@\n......\n......\n......\n...^.."
	e := newEngine(t, template, Config{DangerRow: 1})

	r := e.Update()
	assert.True(t, r.Breached)
	assert.Equal(t, 1, e.Formation().DangerRow())
}

func TestBarrierAbsorbsShot(t *testing.T) {
	e := newEngine(t, "@.........\n..........\n...#......\n..........\n...^......", still)

	e.SubmitFire()
	e.Update()
	require.Equal(t, CellBarrier, e.Cell(P(2, 3)))

	r := e.Update()
	assert.Equal(t, 1, r.BarriersHit)
	assert.Equal(t, CellEmpty, e.Cell(P(2, 3)))
	assert.Equal(t, 0, e.ActiveShots(OwnerPlayer))
	assert.Equal(t, uint64(0), e.Score())
}

func TestPlayerShotKillsAlien(t *testing.T) {
	e := newEngine(t, "..@...\n......\n......\n..^...", still)

	e.SubmitFire()
	e.Update() // player shot at (2,2), enemy shot at (1,2)

	e.SubmitDirection(East)
	e.Update() // step out of the enemy shot's column

	r := e.Update()
	assert.Equal(t, 1, r.Kills)
	assert.Equal(t, uint64(1), e.Score())
	assert.True(t, r.Cleared)
	assert.Equal(t, StatusNormal, e.Status())
	_, ok := e.LivingAlienAt(P(0, 2))
	assert.False(t, ok)
	assert.Equal(t, 0, e.ActiveShots(OwnerPlayer))
}

func TestEnemyShotEndsGame(t *testing.T) {
	e := newEngine(t, "..@...\n......\n......\n..^...", still)

	e.SubmitFire()
	e.Update()
	e.Update()
	r := e.Update()

	// Both collisions resolve in pool order: the kill lands, then the hit.
	assert.Equal(t, 1, r.Kills)
	assert.True(t, r.PlayerHit)
	assert.Equal(t, StatusOver, e.Status())
	assert.Equal(t, uint64(1), e.Score())
}

func TestEnemyShotsPassThroughAliens(t *testing.T) {
	e := newEngine(t, "..@...\n..@...\n......\n......\n......\n......\n.....^", still)

	e.Update() // top alien has the lowest slot index but the player is not below it
	require.Equal(t, 1, e.ActiveShots(OwnerEnemy))
	for range 3 {
		e.Update()
	}
	assert.Equal(t, 2, e.LivingAliens())
}

func TestOverIsStickyUntilRestart(t *testing.T) {
	e := newEngine(t, "......\n....@@\n...^..", Config{})
	e.Update()
	require.Equal(t, StatusOver, e.Status())

	player := e.PlayerPosition()
	e.SubmitFire()
	e.SubmitDirection(West)
	for range 3 {
		r := e.Update()
		assert.Equal(t, Result{}, r)
	}
	assert.Equal(t, player, e.PlayerPosition())
	assert.Equal(t, 0, e.ActiveShots(OwnerPlayer))
	assert.Equal(t, StatusOver, e.Status())

	assert.True(t, e.SubmitRestart())
	assert.Equal(t, StatusNormal, e.Status())
	assert.Equal(t, uint64(0), e.Score())

	assert.False(t, e.SubmitRestart(), "restart is ignored while playing")
}

func TestNextScreenKeepsScore(t *testing.T) {
	e := newEngine(t, "..@...\n......\n......\n..^...", still)
	e.SubmitFire()
	e.Update()
	e.SubmitDirection(East)
	e.Update()
	r := e.Update()
	require.True(t, r.Cleared)

	e.NextScreen()
	assert.Equal(t, uint64(1), e.Score())
	assert.Equal(t, 2, e.Wave())
	assert.Equal(t, 1, e.LivingAliens())
	assert.Equal(t, P(3, 2), e.PlayerPosition())

	e.Reset()
	assert.Equal(t, uint64(0), e.Score())
	assert.Equal(t, 1, e.Wave())
}

func TestResetRestoresErodedTerrain(t *testing.T) {
	e := newEngine(t, "@.........\n..........\n...#......\n..........\n...^......", still)
	e.SubmitFire()
	e.Update()
	e.Update()
	require.Equal(t, CellEmpty, e.Cell(P(2, 3)))

	e.Reset()
	assert.Equal(t, CellBarrier, e.Cell(P(2, 3)))
}

func TestBonusCollected(t *testing.T) {
	e := newEngine(t, "@.....\n......\n...^*.", Config{MoveEvery: 1000, BonusPoints: 7})

	e.SubmitDirection(East)
	r := e.Update()
	assert.True(t, r.Bonus)
	assert.Equal(t, uint64(7), e.Score())
	assert.Equal(t, CellEmpty, e.Cell(P(2, 4)))
}

func TestTickDivider(t *testing.T) {
	e := newEngine(t, smallBoard, Config{TickDivider: 3})

	_, ran := e.Tick()
	assert.False(t, ran)
	_, ran = e.Tick()
	assert.False(t, ran)
	_, ran = e.Tick()
	assert.True(t, ran)
	_, ran = e.Tick()
	assert.False(t, ran)
}

func TestPositionsRowMajor(t *testing.T) {
	e := newEngine(t, smallBoard, Config{})

	var got []Position
	for p := range e.Positions() {
		got = append(got, p)
	}
	require.Len(t, got, e.Width()*e.Height())
	assert.Equal(t, P(0, 0), got[0])
	assert.Equal(t, P(0, 1), got[1])
	assert.Equal(t, P(1, 0), got[e.Width()])
	assert.Equal(t, P(e.Height()-1, e.Width()-1), got[len(got)-1])

	n := 0
	for range e.Positions() {
		n++
	}
	assert.Equal(t, len(got), n, "sequence restarts on each call")

	n = 0
	for range e.Positions() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, 5, n)
}

func TestScoreNeverDecreases(t *testing.T) {
	e := newEngine(t, smallBoard, Config{})
	var last uint64
	for i := range 200 {
		if i%2 == 0 {
			e.SubmitFire()
		}
		if i%7 < 3 {
			e.SubmitDirection(West)
		} else {
			e.SubmitDirection(East)
		}
		r := e.Update()
		assert.GreaterOrEqual(t, e.Score(), last)
		assert.Equal(t, last+uint64(r.Kills), e.Score(), "one point per kill")
		last = e.Score()
		if e.Status() == StatusOver {
			break
		}
	}
}

func alienPositions(e *Engine) []Position {
	var out []Position
	for p := range e.Positions() {
		if _, ok := e.LivingAlienAt(p); ok {
			out = append(out, p)
		}
	}
	return out
}
