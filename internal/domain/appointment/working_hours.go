package appointment

import (
	"fmt"
	"time"

	"github.com/glowdesk/salon-platform/internal/models"
)

// WithinWorkingHours reports whether [start, end) fits inside the staff
// member's window for that day, outside the lunch break. A missing or
// inactive window means the staff member does not work that day; a
// stored window that fails to parse is an error, not a closed day.
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) (bool, error) {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false, nil
	}

	workStart, err := windowOn(start, wh.StartTime)
	if err != nil {
		return false, err
	}
	workEnd, err := windowOn(start, wh.EndTime)
	if err != nil {
		return false, err
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false, nil
	}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart, err := windowOn(start, wh.LunchStart)
		if err != nil {
			return false, err
		}
		lunchEnd, err := windowOn(start, wh.LunchEnd)
		if err != nil {
			return false, err
		}

		if start.Before(lunchEnd) && end.After(lunchStart) {
			return false, nil
		}
	}

	return true, nil
}

// windowOn anchors an "HH:MM" boundary onto the given day, in that
// day's location.
func windowOn(day time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed working hours window %q: %w", hm, err)
	}

	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	), nil
}
