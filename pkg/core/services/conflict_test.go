package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mountain-ministry/shuttle-signup/pkg/core/shuttle"
	"github.com/mountain-ministry/shuttle-signup/pkg/db"
)

func TestCheckShuttleConflict(t *testing.T) {
	mock := &mockStore{
		signups: []db.Signup{
			shuttleSignup("s1", "vol-1", "09:00"),
			shuttleSignup("s2", "vol-2", "09:20"),
			shuttleSignup("s3", "vol-3", "11:00"),
		},
	}
	logger := zap.NewNop()

	count, err := CheckShuttleConflict(context.Background(), mock, logger, "event-1", "vol-1", shuttle.DirectionArrival, shuttle.LocationZhunan, "09:10")
	require.NoError(t, err)

	// vol-2 is nearby; vol-1's own request and vol-3's 11:00 are not counted
	assert.Equal(t, 1, count)
}

func TestCheckShuttleConflict_DifferentLocationExcluded(t *testing.T) {
	mock := &mockStore{
		signups: []db.Signup{shuttleSignup("s1", "vol-2", "09:00")},
	}
	logger := zap.NewNop()

	count, err := CheckShuttleConflict(context.Background(), mock, logger, "event-1", "vol-1", shuttle.DirectionArrival, shuttle.LocationZaoqiao, "09:00")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckShuttleConflict_EmptyTimeShortCircuits(t *testing.T) {
	mock := &mockStore{getSignupsErr: assert.AnError}
	logger := zap.NewNop()

	// No store call is made for a blank candidate time
	count, err := CheckShuttleConflict(context.Background(), mock, logger, "event-1", "vol-1", shuttle.DirectionArrival, shuttle.LocationZhunan, "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
