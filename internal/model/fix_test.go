package model_test

import (
	"testing"

	m "github.com/mouse-blink/gooze-repair/internal/model"
	"github.com/stretchr/testify/require"
)

func span(start, end int) m.SourceSpan {
	return m.SourceSpan{File: "p.expr", Start: start, End: end}
}

func TestFix_Merge_NoOverlap(t *testing.T) {
	a := m.NewFix(m.FixEntry{Span: span(0, 10), Expr: m.NewExpression("a")})
	b := m.NewFix(
		m.FixEntry{Span: span(2, 5), Expr: m.NewExpression("b1")},
		m.FixEntry{Span: span(20, 25), Expr: m.NewExpression("b2")},
	)

	merged := m.Merge(a, b)

	require.Equal(t, 2, merged.Len())
	require.Equal(t, "a", merged.At(0).Expr.Render())
	require.Equal(t, "b2", merged.At(1).Expr.Render())
}

func TestFix_Merge_EmptyRight(t *testing.T) {
	a := m.NewFix(m.FixEntry{Span: span(0, 10), Expr: m.NewExpression("a")})

	merged := m.Merge(a, m.Fix{})

	require.Equal(t, a.Key(), merged.Key())
}

func TestFix_Merge_Confluent(t *testing.T) {
	a := m.NewFix(m.FixEntry{Span: span(0, 10), Expr: m.NewExpression("a")})
	b := m.NewFix(m.FixEntry{Span: span(3, 6), Expr: m.NewExpression("b")})

	merged := m.Merge(a, b)

	for _, e := range merged.Entries() {
		require.False(t, a.At(0).Span.StrictlyContains(e.Span) && e.Expr.Render() == "b")
	}
}

func TestFix_WithoutRemovesEntry(t *testing.T) {
	f := m.NewFix(
		m.FixEntry{Span: span(0, 1), Expr: m.NewExpression("x")},
		m.FixEntry{Span: span(2, 3), Expr: m.NewExpression("y")},
	)

	f2 := f.Without(0)

	require.Equal(t, 1, f2.Len())
	require.Equal(t, "y", f2.At(0).Expr.Render())
}

func TestExpression_SubstituteHole(t *testing.T) {
	e := m.NewExpression("foldl _ 0")
	filled := e.SubstituteHole(m.NewExpression("add"))

	require.Equal(t, "foldl add 0", filled.Render())
}

func TestVerdict_FromBits(t *testing.T) {
	require.Equal(t, m.AllPass, m.FromBits([]bool{true, true}).Kind)
	require.Equal(t, m.AllFail, m.FromBits([]bool{false, false}).Kind)
	require.Equal(t, m.AllFail, m.FromBits(nil).Kind)
	require.Equal(t, m.Partial, m.FromBits([]bool{true, false}).Kind)
}

func TestFitnessCache_RoundTrip(t *testing.T) {
	c := m.NewFitnessCache()

	_, ok := c.Get("k")
	require.False(t, ok)

	c.Set("k", 0.5)

	v, ok := c.Get("k")
	require.True(t, ok)
	require.InDelta(t, 0.5, v, 1e-9)
}

func TestMemoCache_RoundTrip(t *testing.T) {
	c := m.NewMemoCache()
	key := m.NewMemoKey("cfg", 1, []string{"zero", "one"}, nil, "Int")

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Set(key, []string{"zero", "one"})

	v, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, []string{"zero", "one"}, v)
}
