// Package runcache caches complete pipeline results, keyed by a
// content-addressed fingerprint of the input file set.
//
// Cache invalidation is the orchestrator's concern: the engine itself never
// touches the cache, it only gets handed a key. Builds are stampede-safe
// via singleflight.
package runcache
