// Package sqlstore provides the sqlite-backed key-value store the token
// store persists through, built on bun repositories over a persistence
// client. Schema lives in the embedded migration tree at the module root.
package sqlstore
