package appointment

import (
	"context"
	"time"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/dto"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	locScope scope.LocationScope,
	businessID uint,
	staffID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(biz.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

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

func toListDTOs(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			LocationID:  ap.LocationID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}
	return out
}
