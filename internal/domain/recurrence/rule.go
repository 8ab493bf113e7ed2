package recurrence

import (
	"encoding/json"
	"time"

	"github.com/glowdesk/salon-platform/internal/httperr"
)

// ===============================
// Recurrence Rule
// ===============================

type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

const (
	// DefaultOccurrences bounds a series when the rule carries neither
	// an end date nor an occurrence count.
	DefaultOccurrences = 12

	// MaxOccurrences is the hard ceiling applied to every series, no
	// matter what the rule asks for.
	MaxOccurrences = 52
)

// Rule is stored serialized on every appointment row of a series.
type Rule struct {
	Frequency   Frequency  `json:"frequency"`
	Interval    int        `json:"interval,omitempty"`
	DayOfMonth  int        `json:"day_of_month,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Occurrences int        `json:"occurrences,omitempty"`
}

// Validate rejects malformed rules instead of silently defaulting; an
// unknown frequency is a configuration error.
func (r Rule) Validate() error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
	default:
		return httperr.ErrBusiness("invalid_frequency")
	}

	if r.Interval < 0 {
		return httperr.ErrBusiness("invalid_interval")
	}

	if r.DayOfMonth != 0 && (r.DayOfMonth < 1 || r.DayOfMonth > 31) {
		return httperr.ErrBusiness("invalid_day_of_month")
	}

	if r.Occurrences < 0 {
		return httperr.ErrBusiness("invalid_occurrences")
	}

	return nil
}

// Parse decodes a serialized rule and validates it.
func Parse(raw string) (Rule, error) {
	var r Rule
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return Rule{}, httperr.ErrBusiness("invalid_recurrence_rule")
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// Serialize renders the rule the way it is persisted on appointment rows.
func (r Rule) Serialize() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EffectiveCap is the number of occurrences Generate may return.
// Occurrences is authoritative when set; an end date alone leaves the
// hard ceiling as the only count bound; otherwise the default applies.
func (r Rule) EffectiveCap() int {
	if r.Occurrences > 0 {
		if r.Occurrences > MaxOccurrences {
			return MaxOccurrences
		}
		return r.Occurrences
	}
	if r.EndDate != nil {
		return MaxOccurrences
	}
	return DefaultOccurrences
}
