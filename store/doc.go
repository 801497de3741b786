// Package store implements credential persistence: a TokenStore that owns
// the session credential as an all-or-nothing unit, layered over a
// pluggable durable KeyValueStore. An in-memory store ships for tests and
// default wiring; the sql subpackage provides a sqlite-backed one.
package store
