package shuttle

import (
	"sort"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/dateutil"
)

// GroupRequests partitions shuttle-mode transport requests into runs and
// computes a suggested departure time for each. Arrival runs are emitted
// first, then departure runs; within a direction runs are ordered by date
// ascending, then station in canonical order, then time. Incomplete requests
// are dropped silently. The function is pure: shuffling the input yields the
// same multiset of runs.
func GroupRequests(requests []Request, volunteerNames map[string]string) []Run {
	var runs []Run
	runs = append(runs, groupDirection(requests, DirectionArrival, volunteerNames)...)
	runs = append(runs, groupDirection(requests, DirectionDeparture, volunteerNames)...)
	return runs
}

func groupDirection(requests []Request, dir Direction, volunteerNames map[string]string) []Run {
	var eligible []Request
	for _, r := range requests {
		if r.Direction == dir && r.complete() {
			eligible = append(eligible, r)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Date != eligible[j].Date {
			return eligible[i].Date < eligible[j].Date
		}
		return dateutil.TimeToMinutes(eligible[i].Time) < dateutil.TimeToMinutes(eligible[j].Time)
	})

	dates := distinctDates(eligible)

	var runs []Run
	for _, date := range dates {
		for _, loc := range Locations {
			var cluster []Request
			for _, r := range eligible {
				if r.Date != date || r.Location != loc {
					continue
				}
				if len(cluster) == 0 {
					cluster = append(cluster, r)
					continue
				}
				// The 30-minute test is always anchored on the run's first
				// member, not a sliding window. Dense distributions near the
				// boundary can therefore produce runs wider than 30 minutes
				// end-to-end; existing manifests depend on exactly this.
				anchor := dateutil.TimeToMinutes(cluster[0].Time)
				if dateutil.TimeToMinutes(r.Time)-anchor <= ProximityWindowMinutes {
					cluster = append(cluster, r)
				} else {
					runs = append(runs, closeRun(cluster, dir, date, loc, volunteerNames))
					cluster = []Request{r}
				}
			}
			if len(cluster) > 0 {
				runs = append(runs, closeRun(cluster, dir, date, loc, volunteerNames))
			}
		}
	}
	return runs
}

func distinctDates(requests []Request) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, r := range requests {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// closeRun finalizes a cluster into an immutable Run, computing its window
// and suggested departure time.
func closeRun(members []Request, dir Direction, date string, loc Location, volunteerNames map[string]string) Run {
	windowStart := members[0].Time
	windowEnd := members[len(members)-1].Time

	var departureMins int
	if dir == DirectionArrival {
		// Wait for the last-arriving passenger, then a fixed buffer before
		// leaving the pickup point.
		departureMins = dateutil.TimeToMinutes(windowEnd) + BufferMinutes
	} else {
		// Leave the venue early enough to make the earliest onward
		// connection at the station.
		travel, ok := TravelTime(loc)
		if !ok {
			travel = travelTimes[LocationZhunan]
		}
		departureMins = dateutil.TimeToMinutes(windowStart) - (travel + BufferMinutes)
	}

	passengers := make([]Passenger, 0, len(members))
	for _, m := range members {
		name := volunteerNames[m.VolunteerID]
		if name == "" {
			name = "Unknown"
		}
		passengers = append(passengers, Passenger{
			VolunteerID: m.VolunteerID,
			Name:        name,
			Time:        m.Time,
		})
	}

	return Run{
		Direction:          dir,
		Date:               date,
		Location:           loc,
		WindowStart:        windowStart,
		WindowEnd:          windowEnd,
		SuggestedDeparture: dateutil.MinutesToTime(departureMins),
		Passengers:         passengers,
	}
}
