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

// SQLite backed cache of computed strategies.
type SqliteStrategyCache struct {
	DB *sql.DB
}

func NewSqliteStrategyCache(db *sql.DB) *SqliteStrategyCache {
	return &SqliteStrategyCache{DB: db}
}

// Fetch the cached strategy for key.
func (s *SqliteStrategyCache) Get(ctx context.Context, key ports.StrategyKey) (_ *domain.Strategy, _ bool, err error) {
	defer obs.Time(ctx, "strategy.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("strategy cache: db is nil")
	}

	q := `
	SELECT payload
	FROM strategy_cache
	WHERE distance_km = ?
		AND available_lanes = ?
		AND exact_remainders = ?;
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
func (s *SqliteStrategyCache) Put(ctx context.Context, key ports.StrategyKey, strategy *domain.Strategy) (err error) {
	defer obs.Time(ctx, "strategy.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("strategy cache: db is nil")
	}

	payload, err := encodeStrategy(strategy)
	if err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}

	q := `
	INSERT OR REPLACE INTO strategy_cache (
		distance_km,
		available_lanes,
		exact_remainders,
		payload
	)
	VALUES (?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key.DistanceKm, key.AvailableLanes, boolToInt(key.ExactRemainders), string(payload)); err != nil {
		return fmt.Errorf("insert strategy cache key=%s: %w", key, err)
	}

	return nil
}
