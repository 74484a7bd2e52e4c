package activeredis

import (
	"context"
	"fmt"

	"github.com/kuujo/active-redis/internal/keys"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client is the entry point: it owns the store connection and the codec, and
// hands out structure handles. A Client is safe for concurrent use; all
// concurrency correctness beyond that lives in the store's atomic command and
// script execution.
type Client struct {
	rdb   redis.UniversalClient
	codec *Codec
	log   zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger replaces the default no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New wraps an existing store client. Connection management stays with the
// caller.
func New(rdb redis.UniversalClient, opts ...Option) *Client {
	c := &Client{rdb: rdb, log: zerolog.Nop()}
	c.codec = &Codec{client: c}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect builds a client from configuration: parses the URL, connects,
// verifies the connection with a ping, and wires a logger per cfg.Log.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("redis URL is required")
	}
	ropts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	rdb := redis.NewClient(ropts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log, err := cfg.Log.BuildLogger()
	if err != nil {
		return nil, err
	}
	c := New(rdb, opts...)
	if c.log.GetLevel() == zerolog.Disabled {
		c.log = log
	}
	c.log.Info().Str("addr", ropts.Addr).Msg("connected to redis")
	return c, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Codec exposes the payload codec, mainly for callers storing payloads
// through channels this layer does not mediate.
func (c *Client) Codec() *Codec { return c.codec }

// List binds a list handle to key.
func (c *Client) List(key string) *List { return newList(c, key).(*List) }

// NewList binds a list handle to a freshly generated key.
func (c *Client) NewList() *List { return c.List(keys.New()) }

// Hash binds a hash handle to key.
func (c *Client) Hash(key string) *Hash { return newHash(c, key).(*Hash) }

// NewHash binds a hash handle to a freshly generated key.
func (c *Client) NewHash() *Hash { return c.Hash(keys.New()) }

// Set binds a set handle to key.
func (c *Client) Set(key string) *Set { return newSet(c, key).(*Set) }

// NewSet binds a set handle to a freshly generated key.
func (c *Client) NewSet() *Set { return c.Set(keys.New()) }

// SortedSet binds a sorted set handle to key.
func (c *Client) SortedSet(key string) *SortedSet { return newSortedSet(c, key).(*SortedSet) }

// NewSortedSet binds a sorted set handle to a freshly generated key.
func (c *Client) NewSortedSet() *SortedSet { return c.SortedSet(keys.New()) }

// String binds a string handle to key.
func (c *Client) String(key string) *String { return newString(c, key).(*String) }

// NewString binds a string handle to a freshly generated key.
func (c *Client) NewString() *String { return c.String(keys.New()) }

// Attach discovers the kind of an existing key from the store's reported
// type and returns the matching handle. Fails with ErrNotFound when the key
// does not exist.
func (c *Client) Attach(ctx context.Context, key string) (Handle, error) {
	kind, err := c.rdb.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read type of %s: %w", key, err)
	}
	if kind == "none" {
		return nil, fmt.Errorf("attach %s: %w", key, ErrNotFound)
	}
	build, err := handlerFor(Kind(kind))
	if err != nil {
		return nil, err
	}
	return build(c, key), nil
}

func init() {
	RegisterKind(KindString, newString)
	RegisterKind(KindList, newList)
	RegisterKind(KindHash, newHash)
	RegisterKind(KindSet, newSet)
	RegisterKind(KindSortedSet, newSortedSet)
}
