package activeredis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kuujo/active-redis/internal/keys"
)

// List is a handle bound to a server-resident list. Elements pass through the
// codec, so a list may hold inline values and references to other structures
// side by side. Compound mutations (insert, pop, index removal) and scans
// (count, contains) run as atomic server-side scripts.
type List struct {
	*DataType
}

func newList(c *Client, key string) Handle { return &List{newDataType(c, key, KindList)} }

// Append encodes v and pushes it at the tail.
func (l *List) Append(ctx context.Context, v any) error {
	payload, err := l.encode(v)
	if err != nil {
		return err
	}
	if err := l.client.rdb.RPush(ctx, l.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append to %s: %w", l.key, err)
	}
	return nil
}

// Extend appends every value in order.
func (l *List) Extend(ctx context.Context, vs ...any) error {
	if len(vs) == 0 {
		return nil
	}
	payloads := make([]any, len(vs))
	for i, v := range vs {
		payload, err := l.encode(v)
		if err != nil {
			return err
		}
		payloads[i] = payload
	}
	if err := l.client.rdb.RPush(ctx, l.key, payloads...).Err(); err != nil {
		return fmt.Errorf("failed to extend %s: %w", l.key, err)
	}
	return nil
}

// Insert places v immediately before the element currently at index i. Fails
// with ErrIndexOutOfRange when no element holds that index.
func (l *List) Insert(ctx context.Context, i int64, v any) error {
	payload, err := l.encode(v)
	if err != nil {
		return err
	}
	_, err = l.runScript(ctx, scriptListInsert, []any{l.key, i, payload}, nil)
	return listIndexErr(err)
}

// Set overwrites the element at index i.
func (l *List) Set(ctx context.Context, i int64, v any) error {
	payload, err := l.encode(v)
	if err != nil {
		return err
	}
	if err := l.client.rdb.LSet(ctx, l.key, i, payload).Err(); err != nil {
		if strings.Contains(err.Error(), "index out of range") {
			return ErrIndexOutOfRange
		}
		return fmt.Errorf("failed to set %s[%d]: %w", l.key, i, err)
	}
	return nil
}

// Pop removes and returns the head element.
func (l *List) Pop(ctx context.Context) (any, error) {
	return l.PopIndex(ctx, 0)
}

// PopIndex removes and returns the element at index i. The script captures
// the element, overwrites it with a one-shot sentinel, and removes the
// sentinel, so concurrent mutators never observe a gap. Fails with
// ErrIndexOutOfRange when the list is empty or i is out of range.
func (l *List) PopIndex(ctx context.Context, i int64) (any, error) {
	res, err := l.runScript(ctx, scriptListPop, []any{l.key, i, keys.Sentinel()}, nil)
	if err != nil {
		return nil, listIndexErr(err)
	}
	payload, ok := res.(string)
	if !ok {
		return nil, fmt.Errorf("unexpected pop reply %T from %s", res, l.key)
	}
	return l.decode(ctx, payload)
}

// Remove deletes the first occurrence of v.
func (l *List) Remove(ctx context.Context, v any) error {
	payload, err := l.encode(v)
	if err != nil {
		return err
	}
	if err := l.client.rdb.LRem(ctx, l.key, 1, payload).Err(); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", l.key, err)
	}
	return nil
}

// RemoveIndex deletes the element at index i without returning it.
func (l *List) RemoveIndex(ctx context.Context, i int64) error {
	_, err := l.runScript(ctx, scriptListRemoveIndex, []any{l.key, i, keys.Sentinel()}, nil)
	return listIndexErr(err)
}

// Count returns the number of elements equal to v. The scan runs server-side
// in one atomic script, so the count reflects a single point in time.
func (l *List) Count(ctx context.Context, v any) (int64, error) {
	payload, err := l.encode(v)
	if err != nil {
		return 0, err
	}
	res, err := l.runScript(ctx, scriptListCount, []any{l.key, payload}, nil)
	if err != nil {
		return 0, err
	}
	n, ok := res.(int64)
	if !ok {
		return 0, fmt.Errorf("unexpected count reply %T from %s", res, l.key)
	}
	return n, nil
}

// Contains reports whether any element equals v, short-circuiting on the
// first match.
func (l *List) Contains(ctx context.Context, v any) (bool, error) {
	payload, err := l.encode(v)
	if err != nil {
		return false, err
	}
	res, err := l.runScript(ctx, scriptListContains, []any{l.key, payload}, nil)
	if err != nil {
		return false, err
	}
	n, _ := res.(int64)
	return n == 1, nil
}

// Index returns the decoded element at index i, or ErrIndexOutOfRange when
// absent.
func (l *List) Index(ctx context.Context, i int64) (any, error) {
	payload, err := l.client.rdb.LIndex(ctx, l.key, i).Result()
	if err != nil {
		if redisNil(err) {
			return nil, ErrIndexOutOfRange
		}
		return nil, fmt.Errorf("failed to read %s[%d]: %w", l.key, i, err)
	}
	return l.decode(ctx, payload)
}

// Len returns the list length.
func (l *List) Len(ctx context.Context) (int64, error) {
	n, err := l.client.rdb.LLen(ctx, l.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read length of %s: %w", l.key, err)
	}
	return n, nil
}

// Iter returns a lazy iterator over the list, reading one element per store
// round trip starting at index 0. Each call starts a fresh walk.
func (l *List) Iter() *ListIterator {
	return &ListIterator{list: l}
}

// Values materializes the whole list as decoded values.
func (l *List) Values(ctx context.Context) ([]any, error) {
	payloads, err := l.client.rdb.LRange(ctx, l.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.key, err)
	}
	values := make([]any, len(payloads))
	for i, payload := range payloads {
		v, err := l.decode(ctx, payload)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// ListIterator walks a list by repeated indexed reads until a lookup reports
// absence. The walk is finite for a fixed list but observes concurrent
// mutations between reads.
type ListIterator struct {
	list  *List
	index int64
	value any
	err   error
}

// Next advances to the next element, reporting false when the walk is done or
// failed. Check Err after a false return.
func (it *ListIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	v, err := it.list.Index(ctx, it.index)
	if err != nil {
		if !errors.Is(err, ErrIndexOutOfRange) {
			it.err = err
		}
		return false
	}
	it.index++
	it.value = v
	return true
}

// Value returns the element produced by the last successful Next.
func (it *ListIterator) Value() any { return it.value }

// Err returns the first failure encountered, excluding end-of-list.
func (it *ListIterator) Err() error { return it.err }

func listIndexErr(err error) error {
	if err == nil {
		return nil
	}
	var execErr *ScriptExecutionError
	if errors.As(err, &execErr) && strings.Contains(execErr.Err.Error(), "index out of range") {
		return ErrIndexOutOfRange
	}
	return err
}
