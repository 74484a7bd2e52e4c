// Package redistest runs tests against an in-process Redis. miniredis
// executes Lua scripts for real, so script-backed operations are exercised
// end to end without a server.
package redistest

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// New starts an in-process Redis and returns it with a connected client.
// Both are torn down when the test ends.
func New(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}
