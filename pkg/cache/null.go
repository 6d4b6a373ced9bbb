package cache

// NullCache is a no-op cache that never stores anything.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return NullCache{}
}

// Get always returns a cache miss.
func (NullCache) Get(string) ([]byte, bool) { return nil, false }

// Set does nothing.
func (NullCache) Set(string, []byte) {}

// Delete does nothing.
func (NullCache) Delete(string) {}

// Purge does nothing.
func (NullCache) Purge() {}

// Len is always zero.
func (NullCache) Len() int { return 0 }

var _ Cache = NullCache{}
