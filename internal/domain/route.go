package domain

import (
	"fmt"
	"strings"
)

// Represents one hour of travel in a single vehicle class.
// DistanceKm equals the class speed for a full hour; only the final segment
// of a route may carry less.
type Segment struct {
	Class      VehicleClass
	DistanceKm int
}

// Full returns a segment covering the class speed for a whole hour.
func Full(c VehicleClass) Segment {
	return Segment{Class: c, DistanceKm: c.SpeedKmh()}
}

func (s Segment) String() string {
	return fmt.Sprintf("%s (%d km)", s.Class, s.DistanceKm)
}

// Represents the ordered hour-by-hour segments driven by one traveler.
type Route []Segment

// Total distance across all segments.
func (r Route) DistanceKm() int {
	total := 0
	for _, s := range r {
		total += s.DistanceKm
	}
	return total
}

// Number of hours the route takes.
func (r Route) Hours() int { return len(r) }

// Return the route in travel order, e.g. "C4 (400 km) + C2 (200 km)".
func (r Route) String() string {
	parts := make([]string, 0, len(r))
	for _, s := range r {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " + ")
}

// Return the class labels in travel order, e.g. ["C4", "C4", "C2"].
func (r Route) Labels() []string {
	out := make([]string, 0, len(r))
	for _, s := range r {
		out = append(out, s.Class.String())
	}
	return out
}
