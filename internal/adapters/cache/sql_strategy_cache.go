package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lane-strategy-service/internal/domain"
	"lane-strategy-service/internal/platform/obs"
	"lane-strategy-service/internal/ports"
)

// SQLStrategyCache is a Postgres-backed cache of computed strategies.
type SQLStrategyCache struct {
	DB *sql.DB
}

func NewSQLStrategyCache(db *sql.DB) *SQLStrategyCache {
	return &SQLStrategyCache{DB: db}
}

// Fetch the cached strategy for key.
func (s *SQLStrategyCache) Get(ctx context.Context, key ports.StrategyKey) (_ *domain.Strategy, _ bool, err error) {
	defer obs.Time(ctx, "strategy.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("strategy cache: db is nil")
	}

	q := `
	SELECT payload
	FROM strategy_cache
	WHERE distance_km = $1
		AND available_lanes = $2
		AND exact_remainders = $3;
	`

	var payload string
	err = s.DB.QueryRowContext(ctx, q, key.DistanceKm, key.AvailableLanes, boolToInt(key.ExactRemainders)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get strategy cache: query strategy_cache table: %w", err)
	}

	strategy, err := decodeStrategy([]byte(payload))
	if err != nil {
		return nil, false, fmt.Errorf("get strategy cache key=%s: %w", key, err)
	}
	return strategy, true, nil
}

// Store a strategy for key, replacing any previous entry.
func (s *SQLStrategyCache) Put(ctx context.Context, key ports.StrategyKey, strategy *domain.Strategy) (err error) {
	defer obs.Time(ctx, "strategy.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("strategy cache: db is nil")
	}

	payload, err := encodeStrategy(strategy)
	if err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}

	q := `
	INSERT INTO strategy_cache (distance_km, available_lanes, exact_remainders, payload)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (distance_km, available_lanes, exact_remainders) DO UPDATE
	SET payload = EXCLUDED.payload;
	`
	if _, err := s.DB.ExecContext(ctx, q, key.DistanceKm, key.AvailableLanes, boolToInt(key.ExactRemainders), string(payload)); err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
