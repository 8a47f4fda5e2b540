package store

import (
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/equity-screener/internal/models"
)

// ScreenCache provides short-lived in-memory caching for screen results.
// Every UI interaction recomputes the full screen, so identical repeated
// filter combinations are the common case worth absorbing. The cache is
// flushed whenever the watchlist is reloaded.
type ScreenCache struct {
	cache *cache.Cache
	ttl   time.Duration

	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewScreenCache creates a screen cache with the given TTL.
func NewScreenCache(ttl time.Duration) *ScreenCache {
	return &ScreenCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached screen result by filter key.
func (sc *ScreenCache) Get(key string) []models.RatedStock {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if result, found := sc.cache.Get(key); found {
		sc.hitCount++
		if rated, ok := result.([]models.RatedStock); ok {
			return rated
		}
	}

	sc.missCount++
	return nil
}

// Set stores a screen result.
func (sc *ScreenCache) Set(key string, rated []models.RatedStock) {
	sc.cache.Set(key, rated, sc.ttl)
}

// Clear flushes the cache. Called on watchlist reload.
func (sc *ScreenCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.cache.Flush()
	sc.hitCount = 0
	sc.missCount = 0
}

// Stats returns cache statistics.
func (sc *ScreenCache) Stats() (hits, misses uint64, ratio float64) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	hits = sc.hitCount
	misses = sc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of cached screen results.
func (sc *ScreenCache) ItemCount() int {
	return sc.cache.ItemCount()
}
