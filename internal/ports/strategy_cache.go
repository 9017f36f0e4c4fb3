package ports

import (
	"context"
	"fmt"

	"lane-strategy-service/internal/domain"
)

// Identifies one allocator invocation. Equal keys always yield equal strategies.
type StrategyKey struct {
	DistanceKm      int
	AvailableLanes  int
	ExactRemainders bool
}

func (k StrategyKey) String() string {
	return fmt.Sprintf("%d:%d:%t", k.DistanceKm, k.AvailableLanes, k.ExactRemainders)
}

// Port: a memoization boundary for computed strategies.
// Implementations only ever hold successful results.
type StrategyCache interface {
	// Return the cached strategy and whether it was found.
	Get(ctx context.Context, key StrategyKey) (*domain.Strategy, bool, error)
	// Store a strategy, replacing any previous entry for key.
	Put(ctx context.Context, key StrategyKey, strategy *domain.Strategy) error
}
