package appointment

import (
	"context"

	"github.com/glowdesk/salon-platform/internal/audit"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForStaff(ctx, appointmentID, staffID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(biz.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &staffID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
