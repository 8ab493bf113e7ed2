package appointment

import "time"

type AvailabilityInput struct {
	BusinessID uint
	StaffID    uint
	ServiceID  uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
