package shuttle

// Time constants for run clustering and departure suggestions, in minutes.
// The proximity window is measured against the first member of a run, and
// the buffer is the fixed slack added on top of travel time.
const (
	ProximityWindowMinutes = 30
	BufferMinutes          = 10
)

// travelTimes is the one-way venue-to-station travel time per location.
// Zaoqiao is the nearest station; the other two take twice as long.
var travelTimes = map[Location]int{
	LocationZaoqiao:   10,
	LocationZhunan:    20,
	LocationHSRMiaoli: 20,
}

// TravelTime returns the one-way travel time for a station. The second
// return is false for unknown locations, which callers treat as a
// configuration error surfaced before grouping.
func TravelTime(loc Location) (int, bool) {
	t, ok := travelTimes[loc]
	return t, ok
}
