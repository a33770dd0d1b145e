package model_test

import (
	"testing"

	m "github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/stretchr/testify/require"
)

func TestFitnessCache_GetSet(t *testing.T) {
	c := m.NewFitnessCache()

	_, ok := c.Get("x")
	require.False(t, ok)

	c.Set("x", 0.5)

	v, ok := c.Get("x")
	require.True(t, ok)
	require.InDelta(t, 0.5, v, 1e-9)
	require.Equal(t, 1, c.Len())
}

func TestMemoCache_GetSet_DefensiveCopy(t *testing.T) {
	c := m.NewMemoCache()
	key := m.NewMemoKey("oracle-v1", 1, []string{"zero", "one"}, []string{"prop_a"}, "int")

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Set(key, []string{"zero", "one"})

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, []string{"zero", "one"}, got)

	// Mutating the returned slice must not affect the cached value.
	got[0] = "mutated"

	again, _ := c.Get(key)
	require.Equal(t, "zero", again[0])
}

func TestMemoKey_DistinguishesOnEveryField(t *testing.T) {
	base := m.NewMemoKey("oracle-v1", 1, []string{"zero"}, []string{"prop_a"}, "int")
	diffDepth := m.NewMemoKey("oracle-v1", 2, []string{"zero"}, []string{"prop_a"}, "int")
	diffType := m.NewMemoKey("oracle-v1", 1, []string{"zero"}, []string{"prop_a"}, "bool")

	require.NotEqual(t, base.String(), diffDepth.String())
	require.NotEqual(t, base.String(), diffType.String())
}
