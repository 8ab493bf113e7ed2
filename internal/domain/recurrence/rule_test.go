package recurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-platform/internal/httperr"
)

func TestRuleValidate(t *testing.T) {
	cases := []struct {
		name string
		rule Rule
		code string
	}{
		{"valid weekly", Rule{Frequency: FrequencyWeekly}, ""},
		{"valid monthly day", Rule{Frequency: FrequencyMonthly, DayOfMonth: 31}, ""},
		{"empty frequency", Rule{}, "invalid_frequency"},
		{"unknown frequency", Rule{Frequency: "fortnightly"}, "invalid_frequency"},
		{"negative interval", Rule{Frequency: FrequencyDaily, Interval: -1}, "invalid_interval"},
		{"day of month too large", Rule{Frequency: FrequencyMonthly, DayOfMonth: 32}, "invalid_day_of_month"},
		{"negative occurrences", Rule{Frequency: FrequencyDaily, Occurrences: -3}, "invalid_occurrences"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rule.Validate()
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code))
		})
	}
}

func TestParse(t *testing.T) {
	r, err := Parse(`{"frequency":"biweekly","occurrences":5}`)
	require.NoError(t, err)
	assert.Equal(t, FrequencyBiweekly, r.Frequency)
	assert.Equal(t, 5, r.Occurrences)

	_, err = Parse(`{"frequency":"hourly"}`)
	assert.True(t, httperr.IsBusiness(err, "invalid_frequency"))

	_, err = Parse(`not json`)
	assert.True(t, httperr.IsBusiness(err, "invalid_recurrence_rule"))
}

func TestSerializeRoundTrip(t *testing.T) {
	in := Rule{Frequency: FrequencyMonthly, Interval: 2, DayOfMonth: 15, Occurrences: 6}

	raw, err := in.Serialize()
	require.NoError(t, err)

	out, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEffectiveCap(t *testing.T) {
	assert.Equal(t, 7, Rule{Frequency: FrequencyDaily, Occurrences: 7}.EffectiveCap())
	assert.Equal(t, MaxOccurrences, Rule{Frequency: FrequencyDaily, Occurrences: 9999}.EffectiveCap())
	assert.Equal(t, DefaultOccurrences, Rule{Frequency: FrequencyDaily}.EffectiveCap())
}
