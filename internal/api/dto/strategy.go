package dto

import (
	"errors"

	"lane-strategy-service/internal/domain"
)

type StrategyRequest struct {
	DistanceKm      int  `json:"distance_km"`
	AvailableLanes  int  `json:"available_lanes"`
	ExactRemainders bool `json:"exact_remainders"`
}

type BatchRequest struct {
	Requests []StrategyRequest `json:"requests"`
}

type JourneyResponse struct {
	LanesReserved        int             `json:"lanes_reserved"`
	Route                string          `json:"route"`
	Segments             []SegmentResult `json:"segments"`
	TotalDistanceCovered int             `json:"total_distance_covered"`
}

type SegmentResult struct {
	Class      string `json:"class"`
	Lanes      int    `json:"lanes"`
	DistanceKm int    `json:"distance_km"`
}

type StrategyResponse struct {
	OptimalTimeHours int                        `json:"optimal_time_hours"`
	MaxPeople        int                        `json:"max_people"`
	TotalDistanceKm  int                        `json:"total_distance_km"`
	AvailableLanes   int                        `json:"available_lanes"`
	UncoveredKm      int                        `json:"uncovered_km"`
	JourneyBreakdown map[string]JourneyResponse `json:"journey_breakdown"`
}

// Failure messages as existing callers match them.
const (
	InvalidDistanceMessage   = "Distance must be greater than 0."
	InsufficientLanesMessage = "Insufficient lanes. At least 1 lane required to start any journey."
)

// Failure body, keyed Error/Time/People as existing callers read it.
// Time and People are only populated for lane insufficiency.
type FailureResponse struct {
	Error  string `json:"Error"`
	Time   string `json:"Time,omitempty"`
	People *int   `json:"People,omitempty"`
}

// Either Strategy or Failure is set.
type BatchItemResponse struct {
	Strategy *StrategyResponse `json:"strategy,omitempty"`
	Failure  *FailureResponse  `json:"failure,omitempty"`
}

type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

func NewStrategyResponse(s *domain.Strategy) StrategyResponse {
	res := StrategyResponse{
		OptimalTimeHours: s.OptimalTimeHours,
		MaxPeople:        s.MaxPeople,
		TotalDistanceKm:  s.TotalDistanceKm,
		AvailableLanes:   s.AvailableLanes,
		UncoveredKm:      s.UncoveredKm(),
		JourneyBreakdown: make(map[string]JourneyResponse, len(s.Journeys)),
	}

	for _, j := range s.Journeys {
		segs := make([]SegmentResult, 0, len(j.Route))
		for _, seg := range j.Route {
			segs = append(segs, SegmentResult{
				Class:      seg.Class.String(),
				Lanes:      seg.Class.Lanes(),
				DistanceKm: seg.DistanceKm,
			})
		}

		res.JourneyBreakdown[j.Label] = JourneyResponse{
			LanesReserved:        j.LanesReserved,
			Route:                j.Route.String(),
			Segments:             segs,
			TotalDistanceCovered: j.DistanceCoveredKm,
		}
	}

	return res
}

// NewFailureResponse renders an allocator failure. ok is false for errors
// that are not allocator failures.
func NewFailureResponse(err error) (FailureResponse, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidDistance):
		return FailureResponse{Error: InvalidDistanceMessage}, true
	case errors.Is(err, domain.ErrInsufficientLanes):
		people := 0
		return FailureResponse{
			Error:  InsufficientLanesMessage,
			Time:   "N/A",
			People: &people,
		}, true
	}
	return FailureResponse{}, false
}
