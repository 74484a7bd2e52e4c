package activeredis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kuujo/active-redis/internal/keys"
	"github.com/redis/go-redis/v9"
)

// Handle is a client-side object bound to one store key and one structure
// kind. Every concrete kind (List, Hash, Set, SortedSet, String) implements
// Handle by embedding *DataType.
type Handle interface {
	// Key returns the store key the handle is bound to.
	Key() string
	// Kind returns the structure kind the handle is bound to.
	Kind() Kind

	Exists(ctx context.Context) (bool, error)
	Expire(ctx context.Context, ttl time.Duration) error
	Persist(ctx context.Context) error
	TTL(ctx context.Context) (time.Duration, error)
	Rename(ctx context.Context, newKey string) error
	Delete(ctx context.Context) error
}

// DataType is the base of every structure handle. It holds the bound key and
// kind and implements the operations shared by all kinds. The kind never
// changes after construction; the key changes only through Rename.
type DataType struct {
	client *Client
	key    string
	kind   Kind
}

func newDataType(c *Client, key string, kind Kind) *DataType {
	if key == "" {
		key = keys.New()
	}
	return &DataType{client: c, key: key, kind: kind}
}

// Key returns the bound store key.
func (d *DataType) Key() string { return d.key }

// Kind returns the bound structure kind.
func (d *DataType) Kind() Kind { return d.kind }

// Exists reports whether the key currently exists in the store.
func (d *DataType) Exists(ctx context.Context) (bool, error) {
	n, err := d.client.rdb.Exists(ctx, d.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence of %s: %w", d.key, err)
	}
	return n > 0, nil
}

// Expire sets a time-to-live on the key.
func (d *DataType) Expire(ctx context.Context, ttl time.Duration) error {
	if err := d.client.rdb.PExpire(ctx, d.key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set expiration on %s: %w", d.key, err)
	}
	return nil
}

// Persist clears any time-to-live on the key.
func (d *DataType) Persist(ctx context.Context) error {
	if err := d.client.rdb.Persist(ctx, d.key).Err(); err != nil {
		return fmt.Errorf("failed to persist %s: %w", d.key, err)
	}
	return nil
}

// TTL returns the key's remaining time-to-live.
func (d *DataType) TTL(ctx context.Context) (time.Duration, error) {
	ttl, err := d.client.rdb.PTTL(ctx, d.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read TTL of %s: %w", d.key, err)
	}
	return ttl, nil
}

// Rename renames the underlying store entry to newKey and rebinds the handle.
// An empty newKey renames to a freshly generated key. Renaming a key that no
// longer exists fails with ErrNotFound.
func (d *DataType) Rename(ctx context.Context, newKey string) error {
	if newKey == "" {
		newKey = keys.New()
	}
	if err := d.client.rdb.Rename(ctx, d.key, newKey).Err(); err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("rename %s: %w", d.key, ErrNotFound)
		}
		return fmt.Errorf("failed to rename %s: %w", d.key, err)
	}
	d.client.log.Debug().Str("from", d.key).Str("to", newKey).Msg("renamed structure")
	d.key = newKey
	return nil
}

// Delete removes the structure and, transitively, every structure referenced
// from its elements. The walk and the deletions run inside one atomic
// server-side script, so no other client observes a partially deleted graph.
func (d *DataType) Delete(ctx context.Context) error {
	res, err := d.runScript(ctx, scriptDeleteAll, []any{d.key}, nil)
	if err != nil {
		return err
	}
	if n, ok := res.(int64); ok {
		d.client.log.Debug().Str("key", d.key).Int64("deleted", n).Msg("cascading delete")
	}
	return nil
}

// runScript looks up a script by name in the handle's kind table (falling
// back to the shared table) and executes it.
func (d *DataType) runScript(ctx context.Context, name string, pos []any, named map[string]any) (any, error) {
	s, err := lookupScript(d.kind, name)
	if err != nil {
		return nil, err
	}
	return s.Exec(ctx, d.client.rdb, pos, named)
}

// encode and decode route through the owning client's codec.
func (d *DataType) encode(v any) (string, error) {
	return d.client.codec.Encode(v)
}

func (d *DataType) decode(ctx context.Context, payload string) (any, error) {
	return d.client.codec.Decode(ctx, payload)
}

func isNoSuchKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such key")
}

// redisNil reports the client's key/element-absent reply.
func redisNil(err error) bool {
	return err == redis.Nil
}
