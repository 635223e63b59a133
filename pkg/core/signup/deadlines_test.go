package signup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMealsLocked(t *testing.T) {
	// Event starts 2024-09-10, so meals lock at 07:30 on 2024-09-07
	const start = "2024-09-10"

	tests := []struct {
		name string
		asOf time.Time
		want bool
	}{
		{"well before the deadline", time.Date(2024, 9, 5, 12, 0, 0, 0, time.UTC), false},
		{"deadline morning before 07:30", time.Date(2024, 9, 7, 7, 29, 0, 0, time.UTC), false},
		{"exactly 07:30", time.Date(2024, 9, 7, 7, 30, 0, 0, time.UTC), false},
		{"one second past 07:30", time.Date(2024, 9, 7, 7, 30, 1, 0, time.UTC), true},
		{"day after the deadline", time.Date(2024, 9, 8, 0, 0, 0, 0, time.UTC), true},
		{"during the event", time.Date(2024, 9, 11, 12, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MealsLocked(start, tt.asOf))
		})
	}
}

func TestMealsLocked_InvalidStartDate(t *testing.T) {
	assert.False(t, MealsLocked("not-a-date", time.Date(2024, 9, 7, 12, 0, 0, 0, time.UTC)))
}

func TestEventPast(t *testing.T) {
	assert.False(t, EventPast("2024-09-12", "2024-09-12"))
	assert.False(t, EventPast("2024-09-12", "2024-09-11"))
	assert.True(t, EventPast("2024-09-12", "2024-09-13"))
}
