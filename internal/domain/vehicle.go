package domain

import "fmt"

// VehicleClass is one of the four fixed vehicle classes.
// A class exclusively occupies Lanes() lanes while in use and covers
// SpeedKmh() kilometres in one hour of travel.
type VehicleClass int

const (
	C1 VehicleClass = iota + 1
	C2
	C3
	C4
)

// KmPerLane is the distance one lane of capacity moves a vehicle in one hour.
const KmPerLane = 100

// Fastest is the top-speed class every traveler is provisioned for.
const Fastest = C4

// Vehicle classes ordered from fastest to slowest.
var classesBySpeedDesc = []VehicleClass{C4, C3, C2, C1}

func (c VehicleClass) Valid() bool { return c >= C1 && c <= C4 }

// Lanes required while the class is in use.
func (c VehicleClass) Lanes() int { return int(c) }

// Distance covered in exactly one hour.
func (c VehicleClass) SpeedKmh() int { return int(c) * KmPerLane }

func (c VehicleClass) String() string {
	if !c.Valid() {
		return fmt.Sprintf("VehicleClass(%d)", int(c))
	}
	return fmt.Sprintf("C%d", int(c))
}

// FastestWithin returns the fastest class whose lane cost fits in lanes.
// Scans C3, C2, C1 in that order; C4 is never returned because a budget of four
// or more lanes is served by the multi-traveler path.
func FastestWithin(lanes int) (VehicleClass, bool) {
	for _, c := range classesBySpeedDesc[1:] {
		if lanes >= c.Lanes() {
			return c, true
		}
	}
	return 0, false
}

// ClassForRemainder maps a leftover distance to the class rated at exactly that speed.
// Only 100, 200 and 300 km are representable.
func ClassForRemainder(km int) (VehicleClass, bool) {
	switch km {
	case C1.SpeedKmh():
		return C1, true
	case C2.SpeedKmh():
		return C2, true
	case C3.SpeedKmh():
		return C3, true
	}
	return 0, false
}

// SlowestCovering returns the slowest class able to cover km within one hour.
func SlowestCovering(km int) (VehicleClass, bool) {
	if km <= 0 {
		return 0, false
	}
	for i := len(classesBySpeedDesc) - 1; i >= 0; i-- {
		if c := classesBySpeedDesc[i]; c.SpeedKmh() >= km {
			return c, true
		}
	}
	return 0, false
}
