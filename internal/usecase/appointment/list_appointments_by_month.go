package appointment

import (
	"context"
	"time"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/dto"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	locScope scope.LocationScope,
	businessID uint,
	staffID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		locScope.IDs(),
		staffID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTOs(appointments), nil
}
