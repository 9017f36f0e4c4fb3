package domain

import (
	"errors"
	"fmt"
)

// Traveler aggregate holding a lane reservation and building a Route hour by hour.
type Traveler struct {
	ID            int
	LanesReserved int
	Route         Route
	// set once a segment shorter than its class speed has been driven
	finished bool
}

func NewTraveler(id int, lanesReserved int) *Traveler {
	return &Traveler{
		ID:            id,
		LanesReserved: lanesReserved,
	}
}

// Label used as the journey breakdown key, e.g. "Person 1".
func (t *Traveler) Label() string { return TravelerLabel(t.ID) }

func TravelerLabel(id int) string { return fmt.Sprintf("Person %d", id) }

// Drive appends one hour of travel to the route.
func (t *Traveler) Drive(seg Segment) error {
	if !seg.Class.Valid() {
		return fmt.Errorf("drive: traveler %d: invalid vehicle class %d", t.ID, int(seg.Class))
	}
	if seg.Class.Lanes() > t.LanesReserved {
		return fmt.Errorf("drive: traveler %d: class %s needs %d lanes (reserved=%d)",
			t.ID, seg.Class, seg.Class.Lanes(), t.LanesReserved)
	}
	if seg.DistanceKm <= 0 || seg.DistanceKm > seg.Class.SpeedKmh() {
		return fmt.Errorf("drive: traveler %d: %s cannot cover %d km in one hour", t.ID, seg.Class, seg.DistanceKm)
	}
	if t.finished {
		return errors.New("drive: a partial segment must be the last segment of a route")
	}

	t.Route = append(t.Route, seg)
	t.finished = seg.DistanceKm < seg.Class.SpeedKmh()
	return nil
}

// Drive n full hours in the given class.
func (t *Traveler) DriveFull(c VehicleClass, hours int) error {
	for i := 0; i < hours; i++ {
		if err := t.Drive(Full(c)); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot the traveler as an immutable Journey reporting coveredKm.
func (t *Traveler) Journey(coveredKm int) Journey {
	route := make(Route, len(t.Route))
	copy(route, t.Route)

	return Journey{
		Traveler:          t.ID,
		Label:             t.Label(),
		LanesReserved:     t.LanesReserved,
		Route:             route,
		DistanceCoveredKm: coveredKm,
	}
}
