package badgerdb

// Option customizes the badger backed store.
type Option func(*bStore)

// WithInMemory keeps the whole database in memory. Intended for tests.
func WithInMemory(inMemory bool) Option {
	return func(s *bStore) {
		s.inMemory = inMemory
	}
}

// WithCacheSize sets the number of decoded attribute documents kept in the
// in-process cache.
func WithCacheSize(size int) Option {
	return func(s *bStore) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}
