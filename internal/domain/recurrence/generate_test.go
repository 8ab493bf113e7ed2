package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-platform/internal/httperr"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestGenerate_WeeklySteps(t *testing.T) {
	start := date(2026, time.March, 2, 10) // a Monday

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyWeekly,
		Interval:    1,
		Occurrences: 4,
	})
	require.NoError(t, err)
	require.Len(t, dates, 4)

	for i, d := range dates {
		assert.Equal(t, start.AddDate(0, 0, 7*(i+1)), d)
		assert.True(t, d.After(start))
	}

	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i].After(dates[i-1]), "dates must be strictly increasing")
	}
}

func TestGenerate_ExcludesStart(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	dates, err := Generate(start, Rule{Frequency: FrequencyDaily, Occurrences: 3})
	require.NoError(t, err)
	require.Len(t, dates, 3)

	for _, d := range dates {
		assert.False(t, d.Equal(start))
	}
}

func TestGenerate_BiweeklyIgnoresInterval(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	for _, interval := range []int{0, 1, 2, 5} {
		dates, err := Generate(start, Rule{
			Frequency:   FrequencyBiweekly,
			Interval:    interval,
			Occurrences: 3,
		})
		require.NoError(t, err)
		require.Len(t, dates, 3)

		assert.Equal(t, start.AddDate(0, 0, 14), dates[0], "interval=%d", interval)
		assert.Equal(t, start.AddDate(0, 0, 28), dates[1], "interval=%d", interval)
		assert.Equal(t, start.AddDate(0, 0, 42), dates[2], "interval=%d", interval)
	}
}

func TestGenerate_EndDateBeforeFirstStep(t *testing.T) {
	start := date(2026, time.March, 2, 10)
	end := start.AddDate(0, 0, 3)

	dates, err := Generate(start, Rule{
		Frequency: FrequencyWeekly,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Empty(t, dates)
}

func TestGenerate_EndDateInclusive(t *testing.T) {
	start := date(2026, time.March, 2, 10)
	end := start.AddDate(0, 0, 14) // exactly the second step

	dates, err := Generate(start, Rule{
		Frequency: FrequencyWeekly,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, dates[1].Equal(end))
}

func TestGenerate_OccurrencesAuthoritativeOverEndDate(t *testing.T) {
	start := date(2026, time.March, 2, 10)
	end := start.AddDate(1, 0, 0) // far enough for dozens of weeks

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyWeekly,
		EndDate:     &end,
		Occurrences: 2,
	})
	require.NoError(t, err)
	assert.Len(t, dates, 2)
}

func TestGenerate_DefaultCapWithoutBounds(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	dates, err := Generate(start, Rule{Frequency: FrequencyDaily})
	require.NoError(t, err)
	assert.Len(t, dates, DefaultOccurrences)
}

func TestGenerate_HardCeiling(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyDaily,
		Occurrences: 500,
	})
	require.NoError(t, err)
	assert.Len(t, dates, MaxOccurrences)
}

func TestGenerate_DailyInterval(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyDaily,
		Interval:    3,
		Occurrences: 2,
	})
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, start.AddDate(0, 0, 3), dates[0])
	assert.Equal(t, start.AddDate(0, 0, 6), dates[1])
}

func TestGenerate_MonthlyDayOfMonth31DoesNotCrash(t *testing.T) {
	// Starting in a 31-day month and pinning day 31 walks straight into
	// shorter months; the rollover is surfaced, not corrected.
	start := date(2026, time.January, 31, 9)

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyMonthly,
		DayOfMonth:  31,
		Occurrences: 6,
	})
	require.NoError(t, err)
	require.Len(t, dates, 6)

	for _, d := range dates {
		if daysInMonth(d.Year(), d.Month()) >= 31 {
			assert.Equal(t, 31, d.Day(), "month %s must land on the 31st", d.Month())
		}
	}
}

func TestGenerate_MonthlyWithoutDayOfMonth(t *testing.T) {
	start := date(2026, time.April, 15, 9)

	dates, err := Generate(start, Rule{
		Frequency:   FrequencyMonthly,
		Occurrences: 3,
	})
	require.NoError(t, err)
	require.Len(t, dates, 3)
	assert.Equal(t, date(2026, time.May, 15, 9), dates[0])
	assert.Equal(t, date(2026, time.June, 15, 9), dates[1])
	assert.Equal(t, date(2026, time.July, 15, 9), dates[2])
}

func TestGenerate_InvalidFrequencyRejected(t *testing.T) {
	start := date(2026, time.March, 2, 10)

	_, err := Generate(start, Rule{Frequency: "yearly"})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_frequency"))
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
