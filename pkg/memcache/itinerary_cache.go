package memcache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"travelmate/internal/models/response_models"
)

// ItineraryCache stores generated itineraries by request fingerprint.
type ItineraryCache interface {
	Get(ctx context.Context, key string) (response_models.TravelItinerary, bool)
	Set(ctx context.Context, key string, it response_models.TravelItinerary)
}

type MemoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(ttl, 2*ttl)}
}

// Get returns a copy so callers cannot change what is cached.
func (c *MemoryCache) Get(_ context.Context, key string) (response_models.TravelItinerary, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return response_models.TravelItinerary{}, false
	}
	it, ok := v.(response_models.TravelItinerary)
	if !ok {
		return response_models.TravelItinerary{}, false
	}
	return it.Clone(), true
}

func (c *MemoryCache) Set(_ context.Context, key string, it response_models.TravelItinerary) {
	c.store.SetDefault(key, it.Clone())
}

func (c *MemoryCache) ItemCount() int {
	return c.store.ItemCount()
}
