package db

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the strategy cache schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStrategyCacheQuery := `
	CREATE TABLE IF NOT EXISTS strategy_cache (
		distance_km BIGINT NOT NULL,
		available_lanes BIGINT NOT NULL,
		exact_remainders INTEGER NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (distance_km, available_lanes, exact_remainders)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_strategy_cache_lanes
	ON strategy_cache(available_lanes);
	`

	statements := []string{
		createStrategyCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
