package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"lane-strategy-service/internal/domain"
)

// Stored form of a strategy. Kept apart from the domain type so cached rows
// survive field renames in the domain.
type storedStrategy struct {
	TotalDistanceKm  int             `json:"total_distance_km"`
	AvailableLanes   int             `json:"available_lanes"`
	OptimalTimeHours int             `json:"optimal_time_hours"`
	MaxPeople        int             `json:"max_people"`
	Journeys         []storedJourney `json:"journeys"`
}

type storedJourney struct {
	Traveler          int             `json:"traveler"`
	LanesReserved     int             `json:"lanes_reserved"`
	Segments          []storedSegment `json:"segments"`
	DistanceCoveredKm int             `json:"distance_covered_km"`
}

type storedSegment struct {
	Lanes      int `json:"lanes"`
	DistanceKm int `json:"distance_km"`
}

func encodeStrategy(s *domain.Strategy) ([]byte, error) {
	if s == nil {
		return nil, errors.New("encode strategy: strategy is nil")
	}

	st := storedStrategy{
		TotalDistanceKm:  s.TotalDistanceKm,
		AvailableLanes:   s.AvailableLanes,
		OptimalTimeHours: s.OptimalTimeHours,
		MaxPeople:        s.MaxPeople,
		Journeys:         make([]storedJourney, 0, len(s.Journeys)),
	}
	for _, j := range s.Journeys {
		segs := make([]storedSegment, 0, len(j.Route))
		for _, seg := range j.Route {
			segs = append(segs, storedSegment{Lanes: seg.Class.Lanes(), DistanceKm: seg.DistanceKm})
		}
		st.Journeys = append(st.Journeys, storedJourney{
			Traveler:          j.Traveler,
			LanesReserved:     j.LanesReserved,
			Segments:          segs,
			DistanceCoveredKm: j.DistanceCoveredKm,
		})
	}

	b, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode strategy: %w", err)
	}
	return b, nil
}

func decodeStrategy(b []byte) (*domain.Strategy, error) {
	var st storedStrategy
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("decode strategy: %w", err)
	}

	s := &domain.Strategy{
		TotalDistanceKm:  st.TotalDistanceKm,
		AvailableLanes:   st.AvailableLanes,
		OptimalTimeHours: st.OptimalTimeHours,
		MaxPeople:        st.MaxPeople,
		Journeys:         make([]domain.Journey, 0, len(st.Journeys)),
	}
	for _, j := range st.Journeys {
		route := make(domain.Route, 0, len(j.Segments))
		for _, seg := range j.Segments {
			class := domain.VehicleClass(seg.Lanes)
			if !class.Valid() {
				return nil, fmt.Errorf("decode strategy: traveler %d: invalid lane count %d", j.Traveler, seg.Lanes)
			}
			route = append(route, domain.Segment{Class: class, DistanceKm: seg.DistanceKm})
		}
		s.Journeys = append(s.Journeys, domain.Journey{
			Traveler:          j.Traveler,
			Label:             domain.TravelerLabel(j.Traveler),
			LanesReserved:     j.LanesReserved,
			Route:             route,
			DistanceCoveredKm: j.DistanceCoveredKm,
		})
	}

	return s, nil
}
