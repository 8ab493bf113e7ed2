package recurrence

import "time"

// Generate expands a rule into the occurrence dates that follow start.
// The result is chronological, excludes start itself, and is bounded by
// the rule's effective cap. Pure function, no side effects.
//
// Stepping rules:
//   - daily/weekly/monthly honor Interval ("every N units", default 1)
//   - biweekly is a fixed 14-day step, Interval is ignored
//   - monthly with DayOfMonth forces the day after the month step;
//     Go's date normalization means Feb 31 rolls over to early March,
//     which is surfaced as-is rather than corrected
//
// An end date stops the series before recording the first occurrence
// past it. When both an end date and an occurrence count are present
// the count is authoritative and the end date only exits early.
func Generate(start time.Time, r Rule) ([]time.Time, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}

	limit := r.EffectiveCap()
	out := make([]time.Time, 0, limit)

	cursor := start
	for len(out) < limit {
		cursor = step(cursor, r.Frequency, interval, r.DayOfMonth)

		if r.EndDate != nil && cursor.After(*r.EndDate) {
			break
		}

		// Stepping always moves forward, so this should be unreachable;
		// kept as a guard against ever re-emitting the first occurrence.
		if cursor.Equal(start) {
			continue
		}

		out = append(out, cursor)
	}

	return out, nil
}

func step(t time.Time, f Frequency, interval, dayOfMonth int) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, interval)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7*interval)
	case FrequencyBiweekly:
		return t.AddDate(0, 0, 14)
	case FrequencyMonthly:
		next := t.AddDate(0, interval, 0)
		if dayOfMonth > 0 {
			next = time.Date(
				next.Year(), next.Month(), dayOfMonth,
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
				t.Location(),
			)
		}
		return next
	}
	return t
}
