package activeredis

import (
	"context"
	"fmt"
)

// String is a handle bound to a plain string key. The stored value is a
// codec payload, so a String may hold an inline value or a reference to
// another structure.
type String struct {
	*DataType
}

func newString(c *Client, key string) Handle { return &String{newDataType(c, key, KindString)} }

// Set stores v.
func (s *String) Set(ctx context.Context, v any) error {
	payload, err := s.encode(v)
	if err != nil {
		return err
	}
	if err := s.client.rdb.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.key, err)
	}
	return nil
}

// Get returns the decoded value, or ErrNotFound when the key does not exist.
func (s *String) Get(ctx context.Context) (any, error) {
	payload, err := s.client.rdb.Get(ctx, s.key).Result()
	if err != nil {
		if redisNil(err) {
			return nil, fmt.Errorf("get %s: %w", s.key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", s.key, err)
	}
	return s.decode(ctx, payload)
}
