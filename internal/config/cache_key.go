package config

// CacheKeys builds the Redis keys used for reference-data caching.
type CacheKeys struct{}

// NewCacheKeys creates a CacheKeys builder.
func NewCacheKeys() *CacheKeys {
	return &CacheKeys{}
}

// ProgramsKey returns the cache key for the reference program list.
func (k *CacheKeys) ProgramsKey() string {
	return "reference:programs"
}

// InstructorsKey returns the cache key for the reference instructor list.
func (k *CacheKeys) InstructorsKey() string {
	return "reference:instructors"
}
