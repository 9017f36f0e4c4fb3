package domain

import "errors"

var (
	// ErrInvalidDistance is returned when the requested distance is not positive.
	ErrInvalidDistance = errors.New("distance must be greater than 0")

	// ErrInsufficientLanes is returned when not even the slowest class fits the lane budget.
	ErrInsufficientLanes = errors.New("insufficient lanes: at least 1 lane required to start any journey")
)

// Represents the planned trip of a single traveler within a Strategy.
type Journey struct {
	Traveler          int
	Label             string
	LanesReserved     int
	Route             Route
	DistanceCoveredKm int
}

// Represents the outcome of a lane allocation.
// A Strategy is immutable planning data: the minimum whole-hour travel time,
// the number of travelers that can share it, and one Journey per traveler
// that performs useful work, in traveler order.
type Strategy struct {
	TotalDistanceKm  int
	AvailableLanes   int
	OptimalTimeHours int
	MaxPeople        int
	Journeys         []Journey
}

// Journey looks up a traveler by label, e.g. "Person 2".
func (s *Strategy) Journey(label string) (Journey, bool) {
	for _, j := range s.Journeys {
		if j.Label == label {
			return j, true
		}
	}
	return Journey{}, false
}

// Sum of distance covered by every listed traveler.
func (s *Strategy) CoveredKm() int {
	total := 0
	for _, j := range s.Journeys {
		total += j.DistanceCoveredKm
	}
	return total
}

// Distance travelers are accountable for but no segment represents.
// Non-zero only when an irregular remainder had no matching vehicle class.
// A route that overshoots its traveler's share contributes nothing.
func (s *Strategy) UncoveredKm() int {
	total := 0
	for _, j := range s.Journeys {
		if gap := j.DistanceCoveredKm - j.Route.DistanceKm(); gap > 0 {
			total += gap
		}
	}
	return total
}

// Clone returns a deep copy that shares no routes with s.
func (s *Strategy) Clone() *Strategy {
	out := *s
	out.Journeys = make([]Journey, len(s.Journeys))
	for i, j := range s.Journeys {
		j.Route = append(Route(nil), j.Route...)
		out.Journeys[i] = j
	}
	return &out
}
