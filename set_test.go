package activeredis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddRemoveDiscard(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	s := c.NewSet()

	require.NoError(t, s.Add(ctx, "a", "b"))

	ok, err := s.Contains(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Remove(ctx, "a"))
	assert.ErrorIs(t, s.Remove(ctx, "a"), ErrNoSuchElement)

	// Discard is silent on absent members.
	require.NoError(t, s.Discard(ctx, "a"))

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSetPop(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	s := c.NewSet()
	require.NoError(t, s.Add(ctx, "only"))

	v, err := s.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "only", v)

	_, err = s.Pop(ctx)
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestSetAlgebra(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	a := c.NewSet()
	require.NoError(t, a.Add(ctx, "1", "2", "3"))
	b := c.NewSet()
	require.NoError(t, b.Add(ctx, "2", "3", "4"))

	union, err := a.Union(ctx, b)
	require.NoError(t, err)
	assert.NotEqual(t, a.Key(), union.Key())
	assert.NotEqual(t, b.Key(), union.Key())
	members, err := union.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1", "2", "3", "4"}, members)

	inter, err := a.Intersection(ctx, b)
	require.NoError(t, err)
	members, err = inter.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"2", "3"}, members)

	diff, err := a.Difference(ctx, b)
	require.NoError(t, err)
	members, err = diff.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1"}, members)

	// Operands are untouched.
	members, err = a.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1", "2", "3"}, members)
}

func TestSetIntersectionUpdate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	a := c.NewSet()
	require.NoError(t, a.Add(ctx, "1", "2", "3"))
	b := c.NewSet()
	require.NoError(t, b.Add(ctx, "2", "3", "4"))

	require.NoError(t, a.IntersectionUpdate(ctx, b))
	members, err := a.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"2", "3"}, members)
}

func TestSetSymmetricDifference(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	a := c.NewSet()
	require.NoError(t, a.Add(ctx, "1", "2"))
	b := c.NewSet()
	require.NoError(t, b.Add(ctx, "2", "3"))

	sym, err := a.SymmetricDifference(ctx, b)
	require.NoError(t, err)
	members, err := sym.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1", "3"}, members)

	require.NoError(t, a.SymmetricDifferenceUpdate(ctx, b))
	members, err = a.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1", "3"}, members)
}

func TestSetSubsetSuperset(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	small := c.NewSet()
	require.NoError(t, small.Add(ctx, "1", "2"))
	big := c.NewSet()
	require.NoError(t, big.Add(ctx, "1", "2", "3"))

	ok, err := small.IsSubset(ctx, big)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = big.IsSubset(ctx, small)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = big.IsSuperset(ctx, small)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetUpdate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	a := c.NewSet()
	require.NoError(t, a.Add(ctx, "1"))
	b := c.NewSet()
	require.NoError(t, b.Add(ctx, "2"))

	require.NoError(t, a.Update(ctx, b))
	members, err := a.Members(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []any{"1", "2"}, members)
}
