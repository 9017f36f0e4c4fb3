package api

import (
	"net/http"

	"lane-strategy-service/internal/api/handlers"
	"lane-strategy-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.StrategyService, cacheBackend string) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{CacheBackend: cacheBackend}
	strategyHandler := &handlers.StrategyHandler{Service: svc}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("/strategies", strategyHandler.Plan)
	mux.HandleFunc("/strategies/batch", strategyHandler.Batch)

	return requestIDMiddleware(loggingMiddleware(mux))
}
