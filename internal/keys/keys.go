// Package keys generates collision-resistant Redis keys and sentinels.
package keys

import "github.com/google/uuid"

// New returns a fresh key for a structure created without a caller-supplied
// key. UUIDv4 strings keep independently created structures from colliding.
func New() string {
	return uuid.NewString()
}

// Sentinel returns a one-shot marker value that cannot collide with any
// encoded payload: payloads always begin with a fixed tag, sentinels never do.
func Sentinel() string {
	return "__active_redis_pop__:" + uuid.NewString()
}
