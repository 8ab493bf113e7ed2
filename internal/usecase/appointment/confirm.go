package appointment

import (
	"context"

	"github.com/glowdesk/salon-platform/internal/audit"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForStaff(ctx, appointmentID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &staffID,
		Action:     "appointment_confirmed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
