package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-platform/internal/models"
)

func tuesdayHours() *models.WorkingHours {
	return &models.WorkingHours{
		StaffID:    7,
		Weekday:    2,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		Active:     true,
	}
}

func at(hour, min int) time.Time {
	// a Tuesday
	return time.Date(2026, 3, 3, hour, min, 0, 0, time.UTC)
}

func TestWithinWorkingHours(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"morning slot", at(9, 0), at(9, 45), true},
		{"afternoon slot", at(14, 0), at(15, 0), true},
		{"before opening", at(8, 0), at(8, 45), false},
		{"runs past closing", at(17, 30), at(18, 15), false},
		{"overlaps lunch start", at(11, 30), at(12, 15), false},
		{"overlaps lunch end", at(12, 45), at(13, 30), false},
		{"ends exactly at lunch", at(11, 0), at(12, 0), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := WithinWorkingHours(tuesdayHours(), tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestWithinWorkingHoursClosedDay(t *testing.T) {
	wh := tuesdayHours()
	wh.Active = false

	ok, err := WithinWorkingHours(wh, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = WithinWorkingHours(nil, at(10, 0), at(11, 0))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWithinWorkingHoursNoLunch(t *testing.T) {
	wh := tuesdayHours()
	wh.LunchStart = ""
	wh.LunchEnd = ""

	ok, err := WithinWorkingHours(wh, at(12, 0), at(12, 45))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWithinWorkingHoursMalformedWindow(t *testing.T) {
	wh := tuesdayHours()
	wh.EndTime = "6pm"

	_, err := WithinWorkingHours(wh, at(10, 0), at(11, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6pm")
}
