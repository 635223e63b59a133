package shuttle

import (
	"fmt"
	"strings"
)

// RenderManifest renders a run list as the dispatch text operators paste
// into the messaging channel. Output is byte-for-byte reproducible for
// identical inputs; operators diff and re-copy it. Cars are numbered
// sequentially per direction. driverNames maps a run key to the assigned
// driver's display name; runs without an entry render as unassigned.
func RenderManifest(runs []Run, driverNames map[string]string) string {
	var b strings.Builder
	b.WriteString("SHUTTLE DISPATCH LIST\n\n")

	if len(runs) == 0 {
		b.WriteString("No shuttle requests at this time.\n")
		return b.String()
	}

	arrivalCount := 0
	departureCount := 0
	for _, run := range runs {
		var label string
		var carNumber int
		if run.Direction == DirectionArrival {
			arrivalCount++
			carNumber = arrivalCount
			label = "Arrival"
		} else {
			departureCount++
			carNumber = departureCount
			label = "Departure"
		}

		driver := driverNames[run.Key()]
		if driver == "" {
			driver = "(unassigned)"
		}

		fmt.Fprintf(&b, "[%s - Car %d]\n", label, carNumber)
		fmt.Fprintf(&b, "Date: %s\n", run.Date)
		fmt.Fprintf(&b, "Driver: %s\n", driver)
		fmt.Fprintf(&b, "Location: %s\n", run.Location.DisplayName())
		fmt.Fprintf(&b, "Suggested departure: %s\n", run.SuggestedDeparture)
		b.WriteString("Passengers:\n")
		for _, p := range run.Passengers {
			fmt.Fprintf(&b, "- %s %s\n", p.Time, p.Name)
		}
		b.WriteString("------------------\n")
	}

	return b.String()
}
