// Package cache memoizes solved layouts.
//
// Layout requests are pure functions of their inputs, so entries are keyed by
// a content hash of the request ([Key]) and never expire: any change to the
// arrangement or the figure parameters produces a different key. [Cache.Purge]
// drops every entry at once.
//
// # Implementations
//
//   - [MemoryCache]: bounded in-process map, safe for concurrent use
//   - [NullCache]: stores nothing, the default for library callers
package cache

// Cache stores encoded layout results by key.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(key string) ([]byte, bool)

	// Set stores data under key, replacing any previous value.
	Set(key string, data []byte)

	// Delete removes a single entry.
	Delete(key string)

	// Purge removes every entry.
	Purge()

	// Len returns the number of stored entries.
	Len() int
}
