package appointment

import "github.com/glowdesk/salon-platform/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// IsTerminal reports whether a status accepts no further transitions.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if current != StatusBooked {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusBooked && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusBooked
}
