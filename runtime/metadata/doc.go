// Package metadata holds the per-kind field metadata registry populated by
// generated registration code at program startup.
//
// The registry has a two-phase lifecycle. During the load phase the generated
// init() functions define kinds, declare records with their field order, and
// register override bindings; loading is expected to run on a single
// goroutine (Go runs init functions sequentially). Freeze ends the load
// phase. After Freeze the registry is read-only and all query entry points
// are safe for concurrent use without locking.
//
// Lookup resolution is a two-level match: an exact (record, field, kind)
// binding wins, otherwise the kind's default expression is evaluated. Default
// expressions are nullary functions evaluated fresh on every unoverridden
// lookup; their results are never cached.
package metadata
