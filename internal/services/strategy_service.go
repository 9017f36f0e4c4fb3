package services

import (
	"context"
	"log"
	"sync"

	"lane-strategy-service/internal/domain"
	"lane-strategy-service/internal/platform/obs"
	"lane-strategy-service/internal/ports"

	"go.opentelemetry.io/otel/attribute"
)

const defaultBatchWorkers = 5

type PlanRequest struct {
	DistanceKm      int
	AvailableLanes  int
	ExactRemainders bool
}

func (r PlanRequest) Key() ports.StrategyKey {
	return ports.StrategyKey{
		DistanceKm:      r.DistanceKm,
		AvailableLanes:  r.AvailableLanes,
		ExactRemainders: r.ExactRemainders,
	}
}

// Outcome of one request within a batch. Exactly one of Strategy and Err is set.
type BatchResult struct {
	Request  PlanRequest
	Strategy *domain.Strategy
	Err      error
}

// StrategyService fronts ComputeStrategy with an optional cache.
// A nil Cache computes every request.
type StrategyService struct {
	Cache   ports.StrategyCache
	Workers int
}

func NewStrategyService(cache ports.StrategyCache, workers int) *StrategyService {
	if workers < 1 {
		workers = defaultBatchWorkers
	}
	return &StrategyService{Cache: cache, Workers: workers}
}

// Plan returns the strategy for req, consulting the cache first.
// Cache failures are logged and never fail the request.
func (s *StrategyService) Plan(ctx context.Context, req PlanRequest) (_ *domain.Strategy, err error) {
	defer obs.Time(ctx, "strategy.Plan")(&err)

	ctx, span := obs.StartSpan(ctx, "strategy.Plan",
		attribute.Int("distance_km", req.DistanceKm),
		attribute.Int("available_lanes", req.AvailableLanes),
		attribute.Bool("exact_remainders", req.ExactRemainders),
	)
	defer func() { obs.EndSpan(span, err) }()

	key := req.Key()

	if s.Cache != nil {
		cached, ok, cerr := s.Cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("req_id=%s op=strategy.cache.Get key=%s err=%v", obs.RequestID(ctx), key, cerr)
		} else if ok {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return cached, nil
		}
	}

	strategy, err := ComputeStrategy(req.DistanceKm, req.AvailableLanes, ExactRemainders(req.ExactRemainders))
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if cerr := s.Cache.Put(ctx, key, strategy); cerr != nil {
			log.Printf("req_id=%s op=strategy.cache.Put key=%s err=%v", obs.RequestID(ctx), key, cerr)
		}
	}

	return strategy, nil
}

// PlanBatch plans every request on a bounded worker pool.
// Results are returned in request order; per-request failures are reported in
// BatchResult.Err. The returned error is non-nil only when ctx is done.
func (s *StrategyService) PlanBatch(ctx context.Context, reqs []PlanRequest) (_ []BatchResult, err error) {
	defer obs.Time(ctx, "strategy.PlanBatch")(&err)

	results := make([]BatchResult, len(reqs))

	workers := s.Workers
	if workers < 1 {
		workers = defaultBatchWorkers
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, req := range reqs {
		wg.Add(1)
		go func(idx int, r PlanRequest) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[idx] = BatchResult{Request: r, Err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			strategy, err := s.Plan(ctx, r)
			results[idx] = BatchResult{Request: r, Strategy: strategy, Err: err}
		}(i, req)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
