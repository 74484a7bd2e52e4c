package activeredis

import (
	"fmt"
	"sync"
)

// Kind names the category of server-resident structure a handle is bound to.
// Values are the store's own TYPE reply strings, so a reported type maps to a
// Kind without translation.
type Kind string

const (
	KindString    Kind = "string"
	KindList      Kind = "list"
	KindHash      Kind = "hash"
	KindSet       Kind = "set"
	KindSortedSet Kind = "zset"

	// KindAny registers scripts shared by every kind.
	KindAny Kind = "*"
)

// HandleFunc builds a handle of one kind bound to a key.
type HandleFunc func(c *Client, key string) Handle

var (
	handlersMu sync.RWMutex
	handlers   = make(map[Kind]HandleFunc)
)

// RegisterKind binds a kind tag to its handle constructor. The built-in kinds
// register themselves at package load; callers may add further kinds before
// decoding payloads that reference them.
func RegisterKind(kind Kind, build HandleFunc) {
	handlersMu.Lock()
	defer handlersMu.Unlock()
	handlers[kind] = build
}

func handlerFor(kind Kind) (HandleFunc, error) {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	build, ok := handlers[kind]
	if !ok {
		return nil, fmt.Errorf("no handle registered for kind %q", kind)
	}
	return build, nil
}
