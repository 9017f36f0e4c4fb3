package services

import (
	"fmt"
	"math"

	"lane-strategy-service/internal/domain"
)

// Option tunes how ComputeStrategy accounts for distance that does not
// decompose into whole vehicle-class hours.
type Option func(*allocOptions)

type allocOptions struct {
	exactRemainders bool
}

// ExactRemainders makes every kilometre show up in a route.
//
// Without it an irregular remainder (not 100, 200 or 300 km) is dropped from
// the multi-traveler decomposition, and the single-traveler fallback drives
// full-speed hours even when the last hour needs less. With it the final
// segment of a route carries the true remainder in the slowest class able to
// cover it.
func ExactRemainders(enabled bool) Option {
	return func(o *allocOptions) { o.exactRemainders = enabled }
}

// ComputeStrategy allocates a lane budget to travelers covering distanceKm.
//
// Every traveler reserves the lanes of the fastest class, so the budget
// supports lanes/4 concurrent travelers and the minimum time is the distance
// divided by their collective top speed, rounded up to whole hours. The
// distance is then apportioned in traveler order; earlier travelers absorb
// any shortfall and travelers left with no distance assigned are omitted.
//
// Budgets below four lanes fall back to a single traveler in the fastest
// class that fits. The function is pure and safe for concurrent use.
func ComputeStrategy(distanceKm, availableLanes int, opts ...Option) (*domain.Strategy, error) {
	var o allocOptions
	for _, opt := range opts {
		opt(&o)
	}

	if distanceKm <= 0 {
		return nil, fmt.Errorf("compute strategy: distance=%d: %w", distanceKm, domain.ErrInvalidDistance)
	}

	maxPeople := availableLanes / domain.Fastest.Lanes()
	if maxPeople <= 0 {
		return singleTravelerStrategy(distanceKm, availableLanes, o)
	}

	// ceil(distance / (400 * maxPeople)) without forming the collective speed,
	// which overflows for very large lane budgets.
	minTime := ceilDiv(ceilDiv(distanceKm, domain.Fastest.SpeedKmh()), maxPeople)

	// ceil(distance/maxPeople) rounded up to a multiple of 400 is exactly
	// minTime full hours at top speed.
	target := math.MaxInt
	if minTime <= math.MaxInt/domain.Fastest.SpeedKmh() {
		target = minTime * domain.Fastest.SpeedKmh()
	}

	journeys := make([]domain.Journey, 0, min(maxPeople, ceilDiv(distanceKm, target)))
	remaining := distanceKm

	// Travelers after the distance runs out have nothing assigned and are omitted.
	for id := 1; id <= maxPeople && remaining > 0; id++ {
		assigned := min(remaining, target)

		traveler := domain.NewTraveler(id, domain.Fastest.Lanes())
		covered, err := decompose(traveler, assigned, o.exactRemainders)
		if err != nil {
			return nil, fmt.Errorf("compute strategy: %w", err)
		}
		remaining -= covered

		journeys = append(journeys, traveler.Journey(covered))
	}

	return &domain.Strategy{
		TotalDistanceKm:  distanceKm,
		AvailableLanes:   availableLanes,
		OptimalTimeHours: minTime,
		MaxPeople:        maxPeople,
		Journeys:         journeys,
	}, nil
}

// decompose drives assignedKm as full top-speed hours plus at most one
// remainder segment and returns the distance the traveler is accountable for.
// That is always assignedKm: an irregular remainder is counted as covered even
// when no segment represents it, unless exact is set.
func decompose(t *domain.Traveler, assignedKm int, exact bool) (int, error) {
	fullHours := assignedKm / domain.Fastest.SpeedKmh()
	if err := t.DriveFull(domain.Fastest, fullHours); err != nil {
		return 0, fmt.Errorf("decompose %d km: %w", assignedKm, err)
	}

	covered := fullHours * domain.Fastest.SpeedKmh()
	rest := assignedKm - covered
	if rest == 0 {
		return covered, nil
	}

	var (
		class domain.VehicleClass
		ok    bool
	)
	if exact {
		class, ok = domain.SlowestCovering(rest)
	} else {
		class, ok = domain.ClassForRemainder(rest)
	}
	if !ok {
		// Irregular remainder: covered, but not represented by any segment.
		return assignedKm, nil
	}

	if err := t.Drive(domain.Segment{Class: class, DistanceKm: rest}); err != nil {
		return 0, fmt.Errorf("decompose %d km: %w", assignedKm, err)
	}
	return covered + rest, nil
}

// singleTravelerStrategy serves budgets of fewer than four lanes with one
// traveler in the fastest class that fits.
func singleTravelerStrategy(distanceKm, availableLanes int, o allocOptions) (*domain.Strategy, error) {
	class, ok := domain.FastestWithin(availableLanes)
	if !ok {
		return nil, fmt.Errorf("compute strategy: lanes=%d: %w", availableLanes, domain.ErrInsufficientLanes)
	}

	minTime := ceilDiv(distanceKm, class.SpeedKmh())
	traveler := domain.NewTraveler(1, class.Lanes())

	fullHours := minTime
	if o.exactRemainders {
		fullHours = distanceKm / class.SpeedKmh()
	}
	if err := traveler.DriveFull(class, fullHours); err != nil {
		return nil, fmt.Errorf("compute strategy: %w", err)
	}
	if rest := distanceKm - fullHours*class.SpeedKmh(); o.exactRemainders && rest > 0 {
		if err := traveler.Drive(domain.Segment{Class: class, DistanceKm: rest}); err != nil {
			return nil, fmt.Errorf("compute strategy: %w", err)
		}
	}

	return &domain.Strategy{
		TotalDistanceKm:  distanceKm,
		AvailableLanes:   availableLanes,
		OptimalTimeHours: minTime,
		MaxPeople:        1,
		Journeys:         []domain.Journey{traveler.Journey(distanceKm)},
	}, nil
}

// ceilDiv divides positive integers rounding up.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
