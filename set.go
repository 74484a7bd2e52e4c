package activeredis

import (
	"context"
	"fmt"

	"github.com/kuujo/active-redis/internal/keys"
	"github.com/redis/go-redis/v9"
)

// Set is a handle bound to a server-resident set. Members pass through the
// codec, so membership is decided on encoded payloads; the deterministic
// encoder guarantees equal values map to equal members.
//
// Union, Intersection and Difference run store-side and materialize into a
// freshly generated key. Symmetric difference and the subset predicates have
// no store primitive and are computed client-side over current members.
type Set struct {
	*DataType
}

func newSet(c *Client, key string) Handle { return &Set{newDataType(c, key, KindSet)} }

// Add inserts the given values.
func (s *Set) Add(ctx context.Context, vs ...any) error {
	if len(vs) == 0 {
		return nil
	}
	payloads, err := s.encodeAll(vs)
	if err != nil {
		return err
	}
	if err := s.client.rdb.SAdd(ctx, s.key, payloads...).Err(); err != nil {
		return fmt.Errorf("failed to add to %s: %w", s.key, err)
	}
	return nil
}

// Remove deletes v, failing with ErrNoSuchElement when v was not a member.
// Absence is judged from the removal count, not a separate membership check.
func (s *Set) Remove(ctx context.Context, v any) error {
	payload, err := s.encode(v)
	if err != nil {
		return err
	}
	n, err := s.client.rdb.SRem(ctx, s.key, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", s.key, err)
	}
	if n == 0 {
		return fmt.Errorf("member of %s: %w", s.key, ErrNoSuchElement)
	}
	return nil
}

// Discard deletes v if present and is silent otherwise.
func (s *Set) Discard(ctx context.Context, v any) error {
	payload, err := s.encode(v)
	if err != nil {
		return err
	}
	if err := s.client.rdb.SRem(ctx, s.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to discard from %s: %w", s.key, err)
	}
	return nil
}

// Pop removes and returns an arbitrary member, or ErrNoSuchElement when the
// set is empty.
func (s *Set) Pop(ctx context.Context) (any, error) {
	payload, err := s.client.rdb.SPop(ctx, s.key).Result()
	if err != nil {
		if redisNil(err) {
			return nil, fmt.Errorf("pop from %s: %w", s.key, ErrNoSuchElement)
		}
		return nil, fmt.Errorf("failed to pop from %s: %w", s.key, err)
	}
	return s.decode(ctx, payload)
}

// Contains reports membership of v.
func (s *Set) Contains(ctx context.Context, v any) (bool, error) {
	payload, err := s.encode(v)
	if err != nil {
		return false, err
	}
	ok, err := s.client.rdb.SIsMember(ctx, s.key, payload).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check membership in %s: %w", s.key, err)
	}
	return ok, nil
}

// Len returns the set cardinality.
func (s *Set) Len(ctx context.Context) (int64, error) {
	n, err := s.client.rdb.SCard(ctx, s.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cardinality of %s: %w", s.key, err)
	}
	return n, nil
}

// Members returns all decoded members.
func (s *Set) Members(ctx context.Context) ([]any, error) {
	payloads, err := s.client.rdb.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read members of %s: %w", s.key, err)
	}
	members := make([]any, len(payloads))
	for i, payload := range payloads {
		v, err := s.decode(ctx, payload)
		if err != nil {
			return nil, err
		}
		members[i] = v
	}
	return members, nil
}

// Update adds every member of the given sets to this one, store-side.
func (s *Set) Update(ctx context.Context, others ...*Set) error {
	if err := s.client.rdb.SUnionStore(ctx, s.key, s.operandKeys(others)...).Err(); err != nil {
		return fmt.Errorf("failed to update %s: %w", s.key, err)
	}
	return nil
}

// Union materializes the union of this set and others into a new structure
// under a freshly generated key.
func (s *Set) Union(ctx context.Context, others ...*Set) (*Set, error) {
	dest := keys.New()
	if err := s.client.rdb.SUnionStore(ctx, dest, s.operandKeys(others)...).Err(); err != nil {
		return nil, fmt.Errorf("failed to union %s: %w", s.key, err)
	}
	return s.client.Set(dest), nil
}

// Intersection materializes the intersection into a new structure under a
// freshly generated key.
func (s *Set) Intersection(ctx context.Context, others ...*Set) (*Set, error) {
	dest := keys.New()
	if err := s.client.rdb.SInterStore(ctx, dest, s.operandKeys(others)...).Err(); err != nil {
		return nil, fmt.Errorf("failed to intersect %s: %w", s.key, err)
	}
	return s.client.Set(dest), nil
}

// Difference materializes this set minus others into a new structure under a
// freshly generated key.
func (s *Set) Difference(ctx context.Context, others ...*Set) (*Set, error) {
	dest := keys.New()
	if err := s.client.rdb.SDiffStore(ctx, dest, s.operandKeys(others)...).Err(); err != nil {
		return nil, fmt.Errorf("failed to diff %s: %w", s.key, err)
	}
	return s.client.Set(dest), nil
}

// IntersectionUpdate replaces this set with its intersection with others,
// in place and store-side.
func (s *Set) IntersectionUpdate(ctx context.Context, others ...*Set) error {
	if err := s.client.rdb.SInterStore(ctx, s.key, s.operandKeys(others)...).Err(); err != nil {
		return fmt.Errorf("failed to intersect %s in place: %w", s.key, err)
	}
	return nil
}

// DifferenceUpdate removes every member of others from this set, in place
// and store-side.
func (s *Set) DifferenceUpdate(ctx context.Context, others ...*Set) error {
	if err := s.client.rdb.SDiffStore(ctx, s.key, s.operandKeys(others)...).Err(); err != nil {
		return fmt.Errorf("failed to diff %s in place: %w", s.key, err)
	}
	return nil
}

// SymmetricDifference materializes the members in exactly one of the two sets
// into a new structure under a freshly generated key. Computed client-side
// over raw payloads; the store has no native primitive for it.
func (s *Set) SymmetricDifference(ctx context.Context, other *Set) (*Set, error) {
	diff, err := s.symmetricPayloads(ctx, other)
	if err != nil {
		return nil, err
	}
	result := s.client.Set(keys.New())
	if len(diff) == 0 {
		return result, nil
	}
	if err := s.client.rdb.SAdd(ctx, result.key, diff...).Err(); err != nil {
		return nil, fmt.Errorf("failed to store symmetric difference of %s: %w", s.key, err)
	}
	return result, nil
}

// SymmetricDifferenceUpdate replaces this set with its symmetric difference
// with other. The rewrite runs in one transaction.
func (s *Set) SymmetricDifferenceUpdate(ctx context.Context, other *Set) error {
	diff, err := s.symmetricPayloads(ctx, other)
	if err != nil {
		return err
	}
	_, err = s.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(diff) > 0 {
			pipe.SAdd(ctx, s.key, diff...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.key, err)
	}
	return nil
}

// IsSubset reports whether every member of this set is a member of other.
// Client-side scan over raw payloads.
func (s *Set) IsSubset(ctx context.Context, other *Set) (bool, error) {
	mine, err := s.client.rdb.SMembers(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read members of %s: %w", s.key, err)
	}
	theirs, err := s.client.rdb.SMembers(ctx, other.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to read members of %s: %w", other.key, err)
	}
	have := make(map[string]struct{}, len(theirs))
	for _, payload := range theirs {
		have[payload] = struct{}{}
	}
	for _, payload := range mine {
		if _, ok := have[payload]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// IsSuperset reports whether every member of other is a member of this set.
func (s *Set) IsSuperset(ctx context.Context, other *Set) (bool, error) {
	return other.IsSubset(ctx, s)
}

func (s *Set) symmetricPayloads(ctx context.Context, other *Set) ([]any, error) {
	mine, err := s.client.rdb.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read members of %s: %w", s.key, err)
	}
	theirs, err := s.client.rdb.SMembers(ctx, other.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read members of %s: %w", other.key, err)
	}
	inMine := make(map[string]struct{}, len(mine))
	for _, payload := range mine {
		inMine[payload] = struct{}{}
	}
	inTheirs := make(map[string]struct{}, len(theirs))
	for _, payload := range theirs {
		inTheirs[payload] = struct{}{}
	}
	var diff []any
	for _, payload := range mine {
		if _, ok := inTheirs[payload]; !ok {
			diff = append(diff, payload)
		}
	}
	for _, payload := range theirs {
		if _, ok := inMine[payload]; !ok {
			diff = append(diff, payload)
		}
	}
	return diff, nil
}

func (s *Set) operandKeys(others []*Set) []string {
	ks := make([]string, 0, len(others)+1)
	ks = append(ks, s.key)
	for _, o := range others {
		ks = append(ks, o.key)
	}
	return ks
}

func (s *Set) encodeAll(vs []any) ([]any, error) {
	payloads := make([]any, len(vs))
	for i, v := range vs {
		payload, err := s.encode(v)
		if err != nil {
			return nil, err
		}
		payloads[i] = payload
	}
	return payloads, nil
}
