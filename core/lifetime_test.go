package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimeLease(t *testing.T) {
	lt := NewLifetime()
	lease := lt.Lease()
	require.True(t, lt.IsStillValid(lease))

	lt.Dispose()
	assert.False(t, lt.IsStillValid(lease))
	assert.True(t, lt.IsExpired())

	lt.Reset()
	assert.False(t, lt.IsExpired())
	assert.False(t, lt.IsStillValid(lease), "old lease stays invalid after reuse")
	assert.True(t, lt.IsStillValid(lt.Lease()))
}

func TestLifetimeHandlersRunOnceInOrder(t *testing.T) {
	lt := NewLifetime()
	var order []int
	lt.OnDisposed(func() { order = append(order, 1) })
	lt.OnDisposed(func() { order = append(order, 2) })

	lt.Dispose()
	lt.Dispose()
	assert.Equal(t, []int{1, 2}, order)

	lt.OnDisposed(func() { order = append(order, 3) })
	assert.Equal(t, []int{1, 2, 3}, order, "late registration runs immediately")
}

func TestLifetimeNil(t *testing.T) {
	var lt *Lifetime
	assert.True(t, lt.IsExpired())
	assert.False(t, lt.IsStillValid(1))
	assert.NotPanics(t, lt.Dispose)
}

func TestRace(t *testing.T) {
	a, b := NewLifetime(), NewLifetime()
	Race(a, b)
	b.Dispose()
	assert.True(t, a.IsExpired())

	c, d := NewLifetime(), NewLifetime()
	Race(c, d)
	c.Dispose()
	assert.True(t, d.IsExpired())
}

func TestElementLifetime(t *testing.T) {
	el := NewElement(1, NewRect(0, 0, 1, 1))
	require.True(t, el.IsAlive())
	assert.Same(t, el, el.Velocity().Element())

	el.Dispose()
	assert.False(t, el.IsAlive())
}
