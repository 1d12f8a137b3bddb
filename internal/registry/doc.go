// Package registry offers a lightweight, generic, concurrency-safe named
// registry guarded by a sync.RWMutex.  It backs the batch-system lookup
// table and is intentionally minimal.
package registry
