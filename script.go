package activeredis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Script is a server-side Lua routine with a declared, ordered set of named
// key and argument parameters. Definitions are static; the compiled handle is
// created once on first use and reused for the process lifetime.
//
// Scripts execute atomically on the store, which is the reason they exist:
// compound operations run under them instead of client-side read-modify-write
// sequences that would race with concurrent mutators.
type Script struct {
	// Name identifies the script within its owning kind.
	Name string
	// Keys and Args declare parameter names in resolution order.
	Keys []string
	Args []string
	// Src is the Lua source uploaded to the store.
	Src string

	// Prepare rewrites resolved keys and args before dispatch. Nil means
	// identity.
	Prepare func(keys []string, args []any) ([]string, []any, error)
	// Process transforms the raw script result. Nil means identity.
	Process func(v any) (any, error)

	once   sync.Once
	handle *redis.Script
}

func (s *Script) compiled() *redis.Script {
	s.once.Do(func() {
		s.handle = redis.NewScript(s.Src)
	})
	return s.handle
}

// Load uploads the script body ahead of first execution. Loading is optional
// and safe to repeat: execution uses EVALSHA with an EVAL fallback on
// NOSCRIPT, and the server caches scripts by SHA, so racing first uses still
// converge on a single stored copy.
func (s *Script) Load(ctx context.Context, c redis.Scripter) error {
	if err := s.compiled().Load(ctx, c).Err(); err != nil {
		return fmt.Errorf("failed to load script %s: %w", s.Name, err)
	}
	return nil
}

// Exec resolves the declared parameters against pos and named, then runs the
// script. Each key parameter takes its value from named under the declared
// name, falling back to the next unused positional value; argument parameters
// continue from the same positional cursor. A parameter satisfiable by
// neither source fails with ScriptArgumentError before anything reaches the
// store. Store-side faults surface as ScriptExecutionError.
func (s *Script) Exec(ctx context.Context, c redis.Scripter, pos []any, named map[string]any) (any, error) {
	keys, args, err := s.resolve(pos, named)
	if err != nil {
		return nil, err
	}
	if s.Prepare != nil {
		keys, args, err = s.Prepare(keys, args)
		if err != nil {
			return nil, err
		}
	}

	res, err := s.compiled().Run(ctx, c, keys, args...).Result()
	if err != nil {
		if err != redis.Nil {
			return nil, &ScriptExecutionError{Script: s.Name, Err: err}
		}
		res = nil
	}
	if s.Process != nil {
		return s.Process(res)
	}
	return res, nil
}

func (s *Script) resolve(pos []any, named map[string]any) ([]string, []any, error) {
	cursor := 0
	next := func(name string) (any, bool) {
		if v, ok := named[name]; ok {
			return v, true
		}
		if cursor < len(pos) {
			v := pos[cursor]
			cursor++
			return v, true
		}
		return nil, false
	}

	keys := make([]string, 0, len(s.Keys))
	for _, name := range s.Keys {
		v, ok := next(name)
		if !ok {
			return nil, nil, &ScriptArgumentError{Script: s.Name, Param: name}
		}
		keys = append(keys, keyString(v))
	}

	args := make([]any, 0, len(s.Args))
	for _, name := range s.Args {
		v, ok := next(name)
		if !ok {
			return nil, nil, &ScriptArgumentError{Script: s.Name, Param: name}
		}
		args = append(args, v)
	}
	return keys, args, nil
}

func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case Handle:
		return k.Key()
	default:
		return fmt.Sprint(k)
	}
}

type scriptKey struct {
	kind Kind
	name string
}

var (
	scriptsMu sync.RWMutex
	scripts   = make(map[scriptKey]*Script)
)

// RegisterScript binds a script to a structure kind. Registering under
// KindAny shares the script across every kind; a per-kind entry with the same
// name shadows the shared one.
func RegisterScript(kind Kind, s *Script) {
	scriptsMu.Lock()
	defer scriptsMu.Unlock()
	scripts[scriptKey{kind: kind, name: s.Name}] = s
}

func lookupScript(kind Kind, name string) (*Script, error) {
	scriptsMu.RLock()
	defer scriptsMu.RUnlock()
	if s, ok := scripts[scriptKey{kind: kind, name: name}]; ok {
		return s, nil
	}
	if s, ok := scripts[scriptKey{kind: KindAny, name: name}]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("no script %q registered for kind %q", name, kind)
}
