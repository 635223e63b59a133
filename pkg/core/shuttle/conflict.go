package shuttle

import "github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"

// CountNearby reports how many existing shuttle requests in the same
// direction have a time within the proximity window (inclusive, absolute
// difference) of candidateTime. It backs the live "you may want to carpool"
// hint while a volunteer edits a draft. An empty candidateTime yields 0.
// Callers filter out the editing volunteer's own request before invoking.
func CountNearby(candidateTime string, direction Direction, others []Request) int {
	if candidateTime == "" {
		return 0
	}
	candidate := dateutil.TimeToMinutes(candidateTime)

	count := 0
	for _, r := range others {
		if r.Direction != direction || r.Mode != ModeShuttle || r.Time == "" {
			continue
		}
		diff := dateutil.TimeToMinutes(r.Time) - candidate
		if diff < 0 {
			diff = -diff
		}
		if diff <= ProximityWindowMinutes {
			count++
		}
	}
	return count
}
