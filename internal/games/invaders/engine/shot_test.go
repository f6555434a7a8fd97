package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSubPools(t *testing.T) {
	p := NewPool(3, 1)
	assert.Equal(t, 3, p.Cap(OwnerPlayer))
	assert.Equal(t, 1, p.Cap(OwnerEnemy))

	for i := range 3 {
		require.True(t, p.Fire(OwnerPlayer, P(5, i), North))
	}
	assert.False(t, p.Fire(OwnerPlayer, P(5, 9), North), "player sub-pool is full")
	assert.True(t, p.Fire(OwnerEnemy, P(0, 0), South), "enemy sub-pool is independent")
	assert.False(t, p.Fire(OwnerEnemy, P(0, 1), South))

	assert.Equal(t, 3, p.Active(OwnerPlayer))
	assert.Equal(t, 1, p.Active(OwnerEnemy))
}

func TestPoolFreshShotsWaitOneAdvance(t *testing.T) {
	p := NewPool(1, 0)
	require.True(t, p.Fire(OwnerPlayer, P(5, 2), North))

	p.Advance(10, 10)
	assert.True(t, p.ActiveAt(P(5, 2)), "shot fired this update has not moved")

	p.Advance(10, 10)
	assert.True(t, p.ActiveAt(P(4, 2)))
	assert.False(t, p.ActiveAt(P(5, 2)))
}

func TestPoolRetiresShotsLeavingBoard(t *testing.T) {
	p := NewPool(2, 1)
	require.True(t, p.Fire(OwnerPlayer, P(1, 0), North))
	require.True(t, p.Fire(OwnerEnemy, P(2, 0), South))
	p.Advance(4, 4) // fresh shots settle

	p.Advance(4, 4)
	assert.Equal(t, 1, p.Active(OwnerPlayer), "row 0 is still on the board")
	assert.Equal(t, 1, p.Active(OwnerEnemy))

	p.Advance(4, 4)
	assert.Equal(t, 0, p.Active(OwnerPlayer))
	assert.Equal(t, 0, p.Active(OwnerEnemy))

	p.Advance(4, 4)
	assert.Equal(t, 0, p.Active(OwnerPlayer), "counter never goes negative")
	assert.Equal(t, 0, p.Active(OwnerEnemy))
}

func TestPoolDeactivateOnce(t *testing.T) {
	p := NewPool(2, 0)
	require.True(t, p.Fire(OwnerPlayer, P(3, 3), North))
	require.True(t, p.Fire(OwnerPlayer, P(3, 4), North))

	p.Deactivate(0)
	p.Deactivate(0)
	p.Deactivate(42)
	assert.Equal(t, 1, p.Active(OwnerPlayer))
	assert.False(t, p.ActiveAt(P(3, 3)))
	assert.True(t, p.ActiveAt(P(3, 4)))
}

func TestPoolRecyclesFirstFreeSlot(t *testing.T) {
	p := NewPool(3, 0)
	for i := range 3 {
		require.True(t, p.Fire(OwnerPlayer, P(9, i), North))
	}
	p.Deactivate(1)
	require.True(t, p.Fire(OwnerPlayer, P(9, 7), North))

	var slots []int
	p.Each(func(i int, s Shot) {
		slots = append(slots, i)
	})
	assert.Equal(t, []int{0, 1, 2}, slots)
	assert.True(t, p.ActiveAt(P(9, 7)))
}

func TestPoolOwnerAt(t *testing.T) {
	p := NewPool(1, 1)
	require.True(t, p.Fire(OwnerEnemy, P(2, 2), South))

	owner, ok := p.OwnerAt(P(2, 2))
	require.True(t, ok)
	assert.Equal(t, OwnerEnemy, owner)

	_, ok = p.OwnerAt(P(0, 0))
	assert.False(t, ok)

	p.Clear()
	assert.False(t, p.ActiveAt(P(2, 2)))
	assert.Equal(t, 0, p.Active(OwnerEnemy))
}
