package cache

import (
	"sync"

	"github.com/example/kawa-b2b/internal/domain"
)

// MemoryCatalogCache — каталог в памяти. Загружается при старте и по
// требованию, читается на каждый запрос витрины.
type MemoryCatalogCache struct {
	mu   sync.RWMutex
	list []domain.Product
	byID map[string]domain.Product
}

func NewMemoryCatalogCache() *MemoryCatalogCache {
	return &MemoryCatalogCache{byID: make(map[string]domain.Product)}
}

func (c *MemoryCatalogCache) Replace(list []domain.Product) {
	byID := make(map[string]domain.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}
	c.mu.Lock()
	c.list = list
	c.byID = byID
	c.mu.Unlock()
}

func (c *MemoryCatalogCache) List() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.list))
	copy(out, c.list)
	return out
}

func (c *MemoryCatalogCache) Get(id string) (domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byID[id]
	return p, ok
}

var _ domain.CatalogCache = (*MemoryCatalogCache)(nil)
