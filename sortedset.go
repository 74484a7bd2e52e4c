package activeredis

import (
	"context"
	"fmt"
)

// SortedSet is a handle bound to a server-resident sorted set. Only the
// shared handle surface and cardinality are exposed here; scored-member
// operations are not part of this layer. The cascading delete still walks a
// sorted set's members by rank when one is reached through a reference.
type SortedSet struct {
	*DataType
}

func newSortedSet(c *Client, key string) Handle {
	return &SortedSet{newDataType(c, key, KindSortedSet)}
}

// Len returns the sorted set cardinality.
func (z *SortedSet) Len(ctx context.Context) (int64, error) {
	n, err := z.client.rdb.ZCard(ctx, z.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cardinality of %s: %w", z.key, err)
	}
	return n, nil
}
