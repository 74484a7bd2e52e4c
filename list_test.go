package activeredis

import (
	"context"
	"testing"

	"github.com/kuujo/active-redis/internal/redistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	_, rdb := redistest.New(t)
	return New(rdb)
}

func TestListAppendIndexLen(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()

	require.NoError(t, l.Append(ctx, "a"))
	require.NoError(t, l.Extend(ctx, "b", "c"))

	n, err := l.Len(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	v, err := l.Index(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = l.Index(ctx, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestListPopMiddle(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b", "c"))

	v, err := l.PopIndex(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	values, err := l.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, values)
}

func TestListPopDefaultsToHead(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b"))

	v, err := l.Pop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestListPopEmpty(t *testing.T) {
	c := newTestClient(t)
	l := c.NewList()
	_, err := l.Pop(context.Background())
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestListInsert(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "c"))

	require.NoError(t, l.Insert(ctx, 1, "b"))
	values, err := l.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, values)

	assert.ErrorIs(t, l.Insert(ctx, 9, "x"), ErrIndexOutOfRange)
}

func TestListRemove(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b", "a"))

	require.NoError(t, l.Remove(ctx, "a"))
	values, err := l.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"b", "a"}, values)
}

func TestListRemoveIndex(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b", "c"))

	require.NoError(t, l.RemoveIndex(ctx, 1))
	values, err := l.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "c"}, values)

	assert.ErrorIs(t, l.RemoveIndex(ctx, 9), ErrIndexOutOfRange)
}

func TestListSet(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b"))

	require.NoError(t, l.Set(ctx, 1, "z"))
	v, err := l.Index(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "z", v)

	assert.ErrorIs(t, l.Set(ctx, 9, "x"), ErrIndexOutOfRange)
}

func TestListCountAndContains(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b", "a", "a"))

	n, err := l.Count(ctx, "a")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	ok, err := l.Contains(ctx, "b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = l.Contains(ctx, "z")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestListIteratorRestartable(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := c.NewList()
	require.NoError(t, l.Extend(ctx, "a", "b", "c"))

	collect := func() []any {
		var got []any
		it := l.Iter()
		for it.Next(ctx) {
			got = append(got, it.Value())
		}
		require.NoError(t, it.Err())
		return got
	}

	assert.Equal(t, []any{"a", "b", "c"}, collect())
	// A fresh iteration starts over at index 0.
	assert.Equal(t, []any{"a", "b", "c"}, collect())
}

func TestListHoldsReference(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	h := c.NewHash()
	require.NoError(t, h.Set(ctx, "f", "v"))

	l := c.NewList()
	require.NoError(t, l.Append(ctx, "inline"))
	require.NoError(t, l.Append(ctx, h))

	v, err := l.Index(ctx, 1)
	require.NoError(t, err)
	ref, ok := v.(*Hash)
	require.True(t, ok)
	assert.Equal(t, h.Key(), ref.Key())

	field, err := ref.Get(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, "v", field)
}
