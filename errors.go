package activeredis

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected, caller-handled outcomes. Callers branch on
// these with errors.Is.
var (
	// ErrNotFound is returned when an operation targets a key that no longer
	// exists at call time, e.g. renaming a deleted structure.
	ErrNotFound = errors.New("active-redis: key not found")

	// ErrIndexOutOfRange is returned by list operations addressing an index
	// that is absent, including any index on an empty list.
	ErrIndexOutOfRange = errors.New("active-redis: index out of range")

	// ErrNoSuchElement is returned when a hash field or set member is absent
	// and no default applies, and by Pop on an empty set.
	ErrNoSuchElement = errors.New("active-redis: no such element")
)

// DecodingError reports a payload that could not be decoded: an unrecognized
// prefix, or a reference whose target key is missing or reports an
// unregistered kind.
type DecodingError struct {
	Payload string
	Err     error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("active-redis: decode %q: %v", e.Payload, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// ScriptArgumentError reports a script invocation missing a declared key or
// argument parameter. The invocation never reaches the store.
type ScriptArgumentError struct {
	Script string
	Param  string
}

func (e *ScriptArgumentError) Error() string {
	return fmt.Sprintf("active-redis: script %s: no value for parameter %q", e.Script, e.Param)
}

// ScriptExecutionError reports a store-side failure while executing a
// registered script. Err carries the store-reported message.
type ScriptExecutionError struct {
	Script string
	Err    error
}

func (e *ScriptExecutionError) Error() string {
	return fmt.Sprintf("active-redis: script %s: %v", e.Script, e.Err)
}

func (e *ScriptExecutionError) Unwrap() error { return e.Err }
