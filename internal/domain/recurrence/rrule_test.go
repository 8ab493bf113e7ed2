package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRRuleString_Weekly(t *testing.T) {
	r := Rule{Frequency: FrequencyWeekly, Occurrences: 4}

	s, err := r.RRuleString()
	require.NoError(t, err)
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "COUNT=4")
}

func TestRRuleString_BiweeklyMapsToWeeklyInterval2(t *testing.T) {
	// interval on the rule is ignored for biweekly, same as generation
	r := Rule{Frequency: FrequencyBiweekly, Interval: 5, Occurrences: 3}

	s, err := r.RRuleString()
	require.NoError(t, err)
	assert.Contains(t, s, "FREQ=WEEKLY")
	assert.Contains(t, s, "INTERVAL=2")
	assert.NotContains(t, s, "INTERVAL=5")
}

func TestRRuleString_MonthlyDayOfMonth(t *testing.T) {
	r := Rule{Frequency: FrequencyMonthly, DayOfMonth: 15, Occurrences: 6}

	s, err := r.RRuleString()
	require.NoError(t, err)
	assert.Contains(t, s, "FREQ=MONTHLY")
	assert.Contains(t, s, "BYMONTHDAY=15")
}

func TestRRuleString_EndDateBecomesUntil(t *testing.T) {
	end := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	r := Rule{Frequency: FrequencyDaily, EndDate: &end}

	s, err := r.RRuleString()
	require.NoError(t, err)
	assert.Contains(t, s, "FREQ=DAILY")
	assert.Contains(t, s, "UNTIL=20260601")
}

func TestRRuleString_InvalidRule(t *testing.T) {
	_, err := Rule{Frequency: "yearly"}.RRuleString()
	assert.Error(t, err)
}
