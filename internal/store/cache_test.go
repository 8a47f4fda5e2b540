package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/equity-screener/internal/models"
)

func TestScreenCacheSetGet(t *testing.T) {
	cache := NewScreenCache(time.Minute)

	rated := []models.RatedStock{{Stock: models.Stock{Name: "Alpha", NSECode: "ALPHA"}}}
	cache.Set("key", rated)

	got := cache.Get("key")
	require.NotNil(t, got)
	assert.Equal(t, "ALPHA", got[0].Stock.NSECode)
	assert.Equal(t, 1, cache.ItemCount())
}

func TestScreenCacheMiss(t *testing.T) {
	cache := NewScreenCache(time.Minute)
	assert.Nil(t, cache.Get("absent"))

	_, misses, _ := cache.Stats()
	assert.Equal(t, uint64(1), misses)
}

func TestScreenCacheExpiry(t *testing.T) {
	cache := NewScreenCache(20 * time.Millisecond)
	cache.Set("key", []models.RatedStock{{}})

	require.NotNil(t, cache.Get("key"))
	time.Sleep(40 * time.Millisecond)
	assert.Nil(t, cache.Get("key"))
}

func TestScreenCacheClearResetsStats(t *testing.T) {
	cache := NewScreenCache(time.Minute)
	cache.Set("key", []models.RatedStock{{}})
	cache.Get("key")
	cache.Get("absent")

	cache.Clear()

	assert.Zero(t, cache.ItemCount())
	hits, misses, ratio := cache.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, ratio)
}

func TestScreenCacheHitRatio(t *testing.T) {
	cache := NewScreenCache(time.Minute)
	cache.Set("key", []models.RatedStock{{}})

	cache.Get("key")
	cache.Get("key")
	cache.Get("absent")

	hits, misses, ratio := cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-9)
}
