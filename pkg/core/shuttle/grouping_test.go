package shuttle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrivalReq(volunteerID, date, clock string, loc Location) Request {
	return Request{
		EventID:     "event-1",
		VolunteerID: volunteerID,
		Direction:   DirectionArrival,
		Mode:        ModeShuttle,
		Location:    loc,
		Date:        date,
		Time:        clock,
	}
}

func departureReq(volunteerID, date, clock string, loc Location) Request {
	r := arrivalReq(volunteerID, date, clock, loc)
	r.Direction = DirectionDeparture
	return r
}

func TestGroupRequests_SplitsOnProximityWindow(t *testing.T) {
	requests := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:20", LocationZhunan),
		arrivalReq("v3", "2024-09-10", "10:00", LocationZhunan),
	}
	names := map[string]string{"v1": "Amy", "v2": "Ben", "v3": "Cho"}

	runs := GroupRequests(requests, names)
	require.Len(t, runs, 2)

	// 09:00 and 09:20 share a run; 10:00 is 60 minutes from the anchor
	assert.Equal(t, "09:00", runs[0].WindowStart)
	assert.Equal(t, "09:20", runs[0].WindowEnd)
	assert.Len(t, runs[0].Passengers, 2)
	assert.Equal(t, "09:30", runs[0].SuggestedDeparture)

	assert.Equal(t, "10:00", runs[1].WindowStart)
	assert.Len(t, runs[1].Passengers, 1)
	assert.Equal(t, "10:10", runs[1].SuggestedDeparture)
}

func TestGroupRequests_AnchoredOnFirstMember(t *testing.T) {
	// 09:25 is within 30 minutes of 09:00 even though it is only 5 minutes
	// from 09:20; the test is against the run's first member, so all three
	// stay together and 09:35 starts a new run.
	requests := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:20", LocationZhunan),
		arrivalReq("v3", "2024-09-10", "09:25", LocationZhunan),
		arrivalReq("v4", "2024-09-10", "09:35", LocationZhunan),
	}

	runs := GroupRequests(requests, nil)
	require.Len(t, runs, 2)
	assert.Len(t, runs[0].Passengers, 3)
	assert.Equal(t, "09:25", runs[0].WindowEnd)
	assert.Equal(t, "09:35", runs[1].WindowStart)
}

func TestGroupRequests_ExactBoundaryIsInclusive(t *testing.T) {
	requests := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:30", LocationZhunan),
	}

	runs := GroupRequests(requests, nil)
	require.Len(t, runs, 1)
	assert.Len(t, runs[0].Passengers, 2)
}

func TestGroupRequests_OrderIndependent(t *testing.T) {
	forward := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:20", LocationZhunan),
		arrivalReq("v3", "2024-09-10", "10:00", LocationZhunan),
		departureReq("v1", "2024-09-12", "14:00", LocationZaoqiao),
	}
	shuffled := []Request{forward[3], forward[2], forward[0], forward[1]}

	assert.Equal(t, GroupRequests(forward, nil), GroupRequests(shuffled, nil))
}

func TestGroupRequests_SeparatesDatesAndLocations(t *testing.T) {
	requests := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:00", LocationZaoqiao),
		arrivalReq("v3", "2024-09-11", "09:00", LocationZhunan),
	}

	runs := GroupRequests(requests, nil)
	require.Len(t, runs, 3)

	// Same date runs emit in canonical station order
	assert.Equal(t, LocationZaoqiao, runs[0].Location)
	assert.Equal(t, LocationZhunan, runs[1].Location)
	assert.Equal(t, "2024-09-11", runs[2].Date)
}

func TestGroupRequests_ArrivalRunsBeforeDeparture(t *testing.T) {
	requests := []Request{
		departureReq("v1", "2024-09-09", "14:00", LocationZhunan),
		arrivalReq("v2", "2024-09-12", "09:00", LocationZhunan),
	}

	runs := GroupRequests(requests, nil)
	require.Len(t, runs, 2)
	assert.Equal(t, DirectionArrival, runs[0].Direction)
	assert.Equal(t, DirectionDeparture, runs[1].Direction)
}

func TestGroupRequests_DepartureOffsets(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{"Zaoqiao 10min travel plus buffer", LocationZaoqiao, "13:40"},
		{"Zhunan 20min travel plus buffer", LocationZhunan, "13:30"},
		{"HSR Miaoli 20min travel plus buffer", LocationHSRMiaoli, "13:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := GroupRequests([]Request{
				departureReq("v1", "2024-09-12", "14:00", tt.loc),
			}, nil)
			require.Len(t, runs, 1)
			assert.Equal(t, tt.want, runs[0].SuggestedDeparture)
		})
	}
}

func TestGroupRequests_EarlyDepartureWrapsBeforeMidnight(t *testing.T) {
	runs := GroupRequests([]Request{
		departureReq("v1", "2024-09-12", "00:10", LocationZhunan),
	}, nil)
	require.Len(t, runs, 1)

	// 00:10 minus 30 minutes wraps to the previous day's clock
	assert.Equal(t, "23:40", runs[0].SuggestedDeparture)
}

func TestGroupRequests_SkipsIncompleteAndSelfTransport(t *testing.T) {
	noTime := arrivalReq("v2", "2024-09-10", "", LocationZhunan)
	noDate := arrivalReq("v3", "", "09:00", LocationZhunan)
	self := arrivalReq("v4", "2024-09-10", "09:00", LocationZhunan)
	self.Mode = ModeSelf

	runs := GroupRequests([]Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		noTime,
		noDate,
		self,
	}, nil)

	require.Len(t, runs, 1)
	require.Len(t, runs[0].Passengers, 1)
	assert.Equal(t, "v1", runs[0].Passengers[0].VolunteerID)
}

func TestGroupRequests_UnknownVolunteerName(t *testing.T) {
	runs := GroupRequests([]Request{
		arrivalReq("ghost", "2024-09-10", "09:00", LocationZhunan),
	}, map[string]string{"v1": "Amy"})

	require.Len(t, runs, 1)
	assert.Equal(t, "Unknown", runs[0].Passengers[0].Name)
}

func TestGroupRequests_Empty(t *testing.T) {
	assert.Empty(t, GroupRequests(nil, nil))
}

func TestRunKey_StableAcrossRecomputation(t *testing.T) {
	requests := []Request{
		arrivalReq("v1", "2024-09-10", "09:00", LocationZhunan),
		arrivalReq("v2", "2024-09-10", "09:20", LocationZhunan),
	}

	first := GroupRequests(requests, nil)
	second := GroupRequests([]Request{requests[1], requests[0]}, nil)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	assert.Equal(t, "arrival_2024-09-10_Zhunan_09:00_2", first[0].Key())
	assert.Equal(t, first[0].Key(), second[0].Key())
}
