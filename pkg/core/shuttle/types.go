// Package shuttle clusters volunteer transport requests into shared-vehicle
// runs and computes suggested departure times. Everything in this package is
// a pure function over an input snapshot; runs are view artifacts recomputed
// on every call, never stored state.
package shuttle

import "fmt"

// Direction distinguishes travel to the venue from travel home.
type Direction string

const (
	DirectionArrival   Direction = "arrival"
	DirectionDeparture Direction = "departure"
)

// Mode is how a volunteer gets to or from the venue. Only shuttle requests
// participate in grouping; self-transport carries no grouping obligation.
type Mode string

const (
	ModeShuttle Mode = "shuttle"
	ModeSelf    Mode = "self"
)

// Location is a named pickup/drop-off station.
type Location string

const (
	LocationZaoqiao   Location = "Zaoqiao"
	LocationZhunan    Location = "Zhunan"
	LocationHSRMiaoli Location = "HSR_Miaoli"
)

// Locations lists every station in canonical order. Grouping iterates this
// order so run emission is deterministic.
var Locations = []Location{LocationZaoqiao, LocationZhunan, LocationHSRMiaoli}

// DisplayName returns the human-readable station name used in manifests.
func (l Location) DisplayName() string {
	switch l {
	case LocationZaoqiao:
		return "Zaoqiao Station"
	case LocationZhunan:
		return "Zhunan Station"
	case LocationHSRMiaoli:
		return "Miaoli HSR"
	default:
		return string(l)
	}
}

// IsValid reports whether l is one of the configured stations.
func (l Location) IsValid() bool {
	switch l {
	case LocationZaoqiao, LocationZhunan, LocationHSRMiaoli:
		return true
	}
	return false
}

// Request is the transport-relevant subset of one volunteer's signup for one
// direction. A request missing Date, Time, or Location is treated as an
// in-progress draft and silently excluded from grouping.
type Request struct {
	EventID     string
	VolunteerID string
	Direction   Direction
	Mode        Mode
	Location    Location
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
}

// complete reports whether the request carries everything grouping needs.
func (r Request) complete() bool {
	return r.Mode == ModeShuttle && r.Date != "" && r.Time != "" && r.Location != ""
}

// Passenger is one run member labelled for the manifest collaborator.
type Passenger struct {
	VolunteerID string
	Name        string
	Time        string
}

// Run is a cluster of requests sharing direction, date, and location whose
// times fall within the proximity window of the first member.
type Run struct {
	Direction          Direction
	Date               string
	Location           Location
	WindowStart        string // earliest member time
	WindowEnd          string // latest member time
	SuggestedDeparture string
	Passengers         []Passenger
}

// Key returns the run's deterministic identity: a composite of its defining
// fields rather than a generated ID. Regrouping identical inputs yields the
// same key, so external driver assignments stay stable across recomputation.
// Callers must not assume uniqueness beyond this composite.
func (r Run) Key() string {
	return fmt.Sprintf("%s_%s_%s_%s_%d", r.Direction, r.Date, r.Location, r.WindowStart, len(r.Passengers))
}
