package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lane-strategy-service/internal/adapters/cache"
	"lane-strategy-service/internal/api"
	"lane-strategy-service/internal/config"
	"lane-strategy-service/internal/platform/db"
	"lane-strategy-service/internal/platform/obs"
	"lane-strategy-service/internal/ports"
	"lane-strategy-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the configured cache adapter behind the StrategyCache port and starts the HTTP server.
func main() {
	config.Load()
	cfg := config.ServerFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := obs.InitTracing(ctx, "lane-strategy-service", cfg.TraceOutput)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	strategyCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	svc := services.NewStrategyService(strategyCache, cfg.BatchWorkers)
	router := api.NewRouter(svc, cfg.CacheBackend)

	log.Printf("Server listening addr=:%s cache=%s", cfg.Port, cfg.CacheBackend)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openCache builds the StrategyCache selected by CACHE_BACKEND.
// A nil cache (backend "none") makes the service compute every request.
func openCache(ctx context.Context, cfg config.Server) (ports.StrategyCache, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case "none":
		return nil, noop, nil
	case "memory":
		return cache.NewMemoryStrategyCache(), noop, nil
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSqliteStrategyCache(conn), closer(conn), nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, errors.New("open cache: DATABASE_URL is required for postgres")
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.InitSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return cache.NewSQLStrategyCache(conn), closer(conn), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("open cache: ping redis %q: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisStrategyCache(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
	}

	return nil, nil, fmt.Errorf("open cache: unknown CACHE_BACKEND %q", cfg.CacheBackend)
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close db: %v", err)
		}
	}
}
