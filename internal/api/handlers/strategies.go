package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"lane-strategy-service/internal/api/dto"
	"lane-strategy-service/internal/platform/obs"
	"lane-strategy-service/internal/services"
)

const (
	maxDistanceKm  = 1_000_000
	maxLanes       = 10_000
	maxBatchSize   = 100
	maxRequestBody = 1 << 20
)

type StrategyHandler struct {
	Service *services.StrategyService
}

// Plan computes the strategy for a single distance and lane budget.
// Allocator failures are reported as 422 with the failure body.
func (h *StrategyHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.StrategyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateBounds(req); msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	strategy, err := h.Service.Plan(r.Context(), toPlanRequest(req))
	if err != nil {
		if failure, ok := dto.NewFailureResponse(err); ok {
			writeJSON(w, r, http.StatusUnprocessableEntity, failure)
			return
		}
		log.Printf("req_id=%s plan strategy failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewStrategyResponse(strategy))
}

// Batch computes strategies for up to maxBatchSize requests in parallel.
// Each item carries either a strategy or a failure, in request order.
func (h *StrategyHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Requests) == 0 || len(req.Requests) > maxBatchSize {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("requests must contain between 1 and %d items", maxBatchSize))
		return
	}

	planReqs := make([]services.PlanRequest, 0, len(req.Requests))
	for i, item := range req.Requests {
		if msg := validateBounds(item); msg != "" {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("requests[%d]: %s", i, msg))
			return
		}
		planReqs = append(planReqs, toPlanRequest(item))
	}

	results, err := h.Service.PlanBatch(r.Context(), planReqs)
	if err != nil {
		log.Printf("req_id=%s plan batch failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	res := dto.BatchResponse{Results: make([]dto.BatchItemResponse, 0, len(results))}
	for _, result := range results {
		if result.Err != nil {
			failure, ok := dto.NewFailureResponse(result.Err)
			if !ok {
				log.Printf("req_id=%s plan batch item failed: %v", obs.RequestID(r.Context()), result.Err)
				writeError(w, r, http.StatusInternalServerError, "internal server error")
				return
			}
			res.Results = append(res.Results, dto.BatchItemResponse{Failure: &failure})
			continue
		}

		strategy := dto.NewStrategyResponse(result.Strategy)
		res.Results = append(res.Results, dto.BatchItemResponse{Strategy: &strategy})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// Non-positive distances and lane budgets pass through so the allocator can
// report them as failures; only oversized inputs are rejected here.
func validateBounds(req dto.StrategyRequest) string {
	if req.DistanceKm > maxDistanceKm {
		return fmt.Sprintf("distance_km must not exceed %d", maxDistanceKm)
	}
	if req.AvailableLanes > maxLanes {
		return fmt.Sprintf("available_lanes must not exceed %d", maxLanes)
	}
	return ""
}

func toPlanRequest(req dto.StrategyRequest) services.PlanRequest {
	return services.PlanRequest{
		DistanceKm:      req.DistanceKm,
		AvailableLanes:  req.AvailableLanes,
		ExactRemainders: req.ExactRemainders,
	}
}
