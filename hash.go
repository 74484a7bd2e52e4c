package activeredis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Hash is a handle bound to a server-resident hash. Field names are plain
// strings; field values pass through the codec.
type Hash struct {
	*DataType
}

func newHash(c *Client, key string) Handle { return &Hash{newDataType(c, key, KindHash)} }

// Set stores v under field.
func (h *Hash) Set(ctx context.Context, field string, v any) error {
	payload, err := h.encode(v)
	if err != nil {
		return err
	}
	if err := h.client.rdb.HSet(ctx, h.key, field, payload).Err(); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", h.key, field, err)
	}
	return nil
}

// Get returns the decoded value under field, or ErrNoSuchElement when the
// field is absent.
func (h *Hash) Get(ctx context.Context, field string) (any, error) {
	payload, err := h.client.rdb.HGet(ctx, h.key, field).Result()
	if err != nil {
		if redisNil(err) {
			return nil, fmt.Errorf("field %s.%s: %w", h.key, field, ErrNoSuchElement)
		}
		return nil, fmt.Errorf("failed to get %s.%s: %w", h.key, field, err)
	}
	return h.decode(ctx, payload)
}

// GetDefault returns the value under field, or def when the field is absent.
func (h *Hash) GetDefault(ctx context.Context, field string, def any) (any, error) {
	v, err := h.Get(ctx, field)
	if err != nil {
		if errors.Is(err, ErrNoSuchElement) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// SetDefault stores v under field only when the field is absent, returning
// the value the field holds afterwards.
func (h *Hash) SetDefault(ctx context.Context, field string, v any) (any, error) {
	payload, err := h.encode(v)
	if err != nil {
		return nil, err
	}
	set, err := h.client.rdb.HSetNX(ctx, h.key, field, payload).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to set default %s.%s: %w", h.key, field, err)
	}
	if set {
		return v, nil
	}
	return h.Get(ctx, field)
}

// DeleteField removes field, failing with ErrNoSuchElement if it was absent.
func (h *Hash) DeleteField(ctx context.Context, field string) error {
	n, err := h.client.rdb.HDel(ctx, h.key, field).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s.%s: %w", h.key, field, err)
	}
	if n == 0 {
		return fmt.Errorf("field %s.%s: %w", h.key, field, ErrNoSuchElement)
	}
	return nil
}

// Contains reports whether field exists.
func (h *Hash) Contains(ctx context.Context, field string) (bool, error) {
	ok, err := h.client.rdb.HExists(ctx, h.key, field).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", h.key, field, err)
	}
	return ok, nil
}

// Keys returns all field names.
func (h *Hash) Keys(ctx context.Context) ([]string, error) {
	fields, err := h.client.rdb.HKeys(ctx, h.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read fields of %s: %w", h.key, err)
	}
	return fields, nil
}

// Values returns all decoded field values.
func (h *Hash) Values(ctx context.Context) ([]any, error) {
	payloads, err := h.client.rdb.HVals(ctx, h.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read values of %s: %w", h.key, err)
	}
	values := make([]any, len(payloads))
	for i, payload := range payloads {
		v, err := h.decode(ctx, payload)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Items returns the whole hash as a decoded map.
func (h *Hash) Items(ctx context.Context) (map[string]any, error) {
	raw, err := h.client.rdb.HGetAll(ctx, h.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", h.key, err)
	}
	items := make(map[string]any, len(raw))
	for field, payload := range raw {
		v, err := h.decode(ctx, payload)
		if err != nil {
			return nil, err
		}
		items[field] = v
	}
	return items, nil
}

// Pop removes field and returns its decoded value, or ErrNoSuchElement when
// the field is absent. The read and the removal run in one transaction.
func (h *Hash) Pop(ctx context.Context, field string) (any, error) {
	var get *redis.StringCmd
	_, err := h.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.HGet(ctx, h.key, field)
		pipe.HDel(ctx, h.key, field)
		return nil
	})
	if err != nil {
		if redisNil(err) {
			return nil, fmt.Errorf("field %s.%s: %w", h.key, field, ErrNoSuchElement)
		}
		return nil, fmt.Errorf("failed to pop %s.%s: %w", h.key, field, err)
	}
	return h.decode(ctx, get.Val())
}

// PopDefault is Pop returning def instead of failing on an absent field.
func (h *Hash) PopDefault(ctx context.Context, field string, def any) (any, error) {
	v, err := h.Pop(ctx, field)
	if err != nil {
		if errors.Is(err, ErrNoSuchElement) {
			return def, nil
		}
		return nil, err
	}
	return v, nil
}

// Len returns the number of fields.
func (h *Hash) Len(ctx context.Context) (int64, error) {
	n, err := h.client.rdb.HLen(ctx, h.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read length of %s: %w", h.key, err)
	}
	return n, nil
}

// Clear removes every field by deleting the key outright. Unlike Delete this
// never cascades into referenced structures.
func (h *Hash) Clear(ctx context.Context) error {
	if err := h.client.rdb.Del(ctx, h.key).Err(); err != nil {
		return fmt.Errorf("failed to clear %s: %w", h.key, err)
	}
	return nil
}
