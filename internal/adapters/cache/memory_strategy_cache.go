package cache

import (
	"context"
	"errors"
	"sync"

	"lane-strategy-service/internal/domain"
	"lane-strategy-service/internal/ports"
)

// In-process cache of computed strategies. Entries are copied on the way in
// and out so callers never share routes.
type MemoryStrategyCache struct {
	mu sync.RWMutex
	m  map[ports.StrategyKey]*domain.Strategy
}

func NewMemoryStrategyCache() *MemoryStrategyCache {
	return &MemoryStrategyCache{m: make(map[ports.StrategyKey]*domain.Strategy)}
}

func (c *MemoryStrategyCache) Get(ctx context.Context, key ports.StrategyKey) (*domain.Strategy, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.m[key]
	if !ok {
		return nil, false, nil
	}
	return s.Clone(), true, nil
}

func (c *MemoryStrategyCache) Put(ctx context.Context, key ports.StrategyKey, strategy *domain.Strategy) error {
	if strategy == nil {
		return errors.New("insert strategy cache: strategy is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[key] = strategy.Clone()
	return nil
}

func (c *MemoryStrategyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
