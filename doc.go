// Package activeredis maps server-resident Redis structures (strings, lists,
// hashes, sets, sorted sets) onto typed client-side handles with
// collection-style operations.
//
// Two pieces carry the design. The payload codec stores every scalar slot as
// a tagged string that is either an inline JSON value or a reference to
// another structure's key, so structures nest by reference with no client-side
// bookkeeping. The script engine pushes every compound mutation into a
// server-side Lua script, which Redis executes atomically, so index-based
// list edits and reference-aware cascading deletes never race with concurrent
// clients. If you require multiple commands to run atomically, bundle them in
// a script; this package never substitutes client-side read-modify-write
// sequences.
package activeredis
