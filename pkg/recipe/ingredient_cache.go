package recipe

import (
	"pantry-manager/domain"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const defaultIngredientCacheSize = 512

// ingredientCache holds recipe ingredient lists keyed by recipe id.
//
// Readers take a generation before loading from the store and pass it back to
// put. Every invalidate bumps the generation, so a list loaded before or
// during a write is never stored once that write has finished.
type ingredientCache struct {
	mu         sync.Mutex
	generation uint64
	cache      *lru.Cache
}

func newIngredientCache(size int) *ingredientCache {
	if size <= 0 {
		size = defaultIngredientCacheSize
	}
	cache, _ := lru.New(size)
	return &ingredientCache{cache: cache}
}

func (c *ingredientCache) get(recipeID string) ([]domain.Quantity, bool) {
	v, ok := c.cache.Get(recipeID)
	if !ok {
		return nil, false
	}
	cached := v.([]domain.Quantity)
	out := make([]domain.Quantity, len(cached))
	copy(out, cached)
	return out, true
}

func (c *ingredientCache) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// put stores the list unless an invalidate happened since begin returned gen.
func (c *ingredientCache) put(recipeID string, gen uint64, ingredients []domain.Quantity) bool {
	stored := make([]domain.Quantity, len(ingredients))
	copy(stored, ingredients)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.cache.Add(recipeID, stored)
	return true
}

func (c *ingredientCache) invalidate(recipeID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Remove(recipeID)
}
