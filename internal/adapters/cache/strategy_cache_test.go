package cache

import (
	"context"
	"testing"
	"time"

	"lane-strategy-service/internal/domain"
	"lane-strategy-service/internal/platform/db"
	"lane-strategy-service/internal/ports"
	"lane-strategy-service/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStrategy(t *testing.T, distance, lanes int, exact bool) (ports.StrategyKey, *domain.Strategy) {
	t.Helper()
	s, err := services.ComputeStrategy(distance, lanes, services.ExactRemainders(exact))
	require.NoError(t, err)
	return ports.StrategyKey{DistanceKm: distance, AvailableLanes: lanes, ExactRemainders: exact}, s
}

// exerciseCache runs the behavior every StrategyCache adapter must share.
func exerciseCache(t *testing.T, c ports.StrategyCache) {
	ctx := context.Background()
	key, strategy := mustStrategy(t, 1000, 4, false)

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, c.Put(ctx, key, strategy))

	got, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, strategy, got)

	// The exact-remainder flag is part of the key.
	exactKey := key
	exactKey.ExactRemainders = true
	_, ok, err = c.Get(ctx, exactKey)
	require.NoError(t, err)
	assert.False(t, ok)

	// Put replaces.
	_, replacement := mustStrategy(t, 100, 2, false)
	require.NoError(t, c.Put(ctx, key, replacement))
	got, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, replacement, got)

	// Multi-traveler and partial segments survive storage.
	key, strategy = mustStrategy(t, 2650, 12, true)
	require.NoError(t, c.Put(ctx, key, strategy))
	got, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, strategy, got)
}

func TestSqliteStrategyCache(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.InitSchema(conn))

	exerciseCache(t, NewSqliteStrategyCache(conn))
}

func TestSqliteStrategyCacheCorruptPayload(t *testing.T) {
	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.InitSchema(conn))

	_, err = conn.Exec(`INSERT INTO strategy_cache (distance_km, available_lanes, exact_remainders, payload) VALUES (5, 4, 0, 'not json');`)
	require.NoError(t, err)

	_, ok, err := NewSqliteStrategyCache(conn).Get(context.Background(), ports.StrategyKey{DistanceKm: 5, AvailableLanes: 4})
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisStrategyCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseCache(t, NewRedisStrategyCache(client, 0))
}

func TestRedisStrategyCacheExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedisStrategyCache(client, time.Minute)
	key, strategy := mustStrategy(t, 800, 8, false)
	require.NoError(t, c.Put(context.Background(), key, strategy))
	assert.True(t, mr.Exists("strategy:800:8:false"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStrategyCacheRejectsInvalidSegments(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	key := ports.StrategyKey{DistanceKm: 1, AvailableLanes: 4}
	require.NoError(t, mr.Set("strategy:"+key.String(), `{"journeys":[{"traveler":1,"segments":[{"lanes":9,"distance_km":1}]}]}`))

	_, ok, err := NewRedisStrategyCache(client, 0).Get(context.Background(), key)
	assert.ErrorContains(t, err, "invalid lane count 9")
	assert.False(t, ok)
}

func TestMemoryStrategyCache(t *testing.T) {
	exerciseCache(t, NewMemoryStrategyCache())
}

func TestMemoryStrategyCacheCopiesEntries(t *testing.T) {
	c := NewMemoryStrategyCache()
	key, strategy := mustStrategy(t, 1000, 4, false)
	require.NoError(t, c.Put(context.Background(), key, strategy))

	strategy.Journeys[0].Route[0].DistanceKm = 1

	got, ok, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 400, got.Journeys[0].Route[0].DistanceKm)
	assert.Equal(t, 1, c.Len())

	assert.Error(t, c.Put(context.Background(), key, nil))
}

func TestSQLStrategyCacheRequiresDB(t *testing.T) {
	c := NewSQLStrategyCache(nil)
	key, strategy := mustStrategy(t, 100, 4, false)

	_, _, err := c.Get(context.Background(), key)
	assert.Error(t, err)
	assert.Error(t, c.Put(context.Background(), key, strategy))
}
