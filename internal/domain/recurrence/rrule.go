package recurrence

import (
	"github.com/teambition/rrule-go"
)

// RRuleString renders the rule as an iCalendar RRULE value. Biweekly
// maps onto WEEKLY with a doubled interval since RFC 5545 has no
// biweekly frequency of its own.
func (r Rule) RRuleString() (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}

	opt := rrule.ROption{Interval: r.Interval}
	if opt.Interval == 0 {
		opt.Interval = 1
	}

	switch r.Frequency {
	case FrequencyDaily:
		opt.Freq = rrule.DAILY
	case FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
	case FrequencyBiweekly:
		opt.Freq = rrule.WEEKLY
		opt.Interval = 2
	case FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
		if r.DayOfMonth > 0 {
			opt.Bymonthday = []int{r.DayOfMonth}
		}
	}

	if r.Occurrences > 0 {
		opt.Count = r.Occurrences
	}
	if r.EndDate != nil {
		opt.Until = *r.EndDate
	}

	return opt.RRuleString(), nil
}
