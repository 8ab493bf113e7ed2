package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/salon-platform/internal/audit"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID uint
	LocationID uint
	StaffID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date   string
	Time   string
	Notes  string
	Source string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetLocation(ctx, in.LocationID, in.BusinessID); err != nil {
		return nil, httperr.ErrBusiness("location_not_allowed")
	}

	// Date/time land in the business timezone.
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := biz.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	ok, err := uc.repo.IsWithinWorkingHours(ctx, in.StaffID, start, end)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.AssertNoTimeConflict(ctx, in.StaffID, start, end); err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "staff"
	}

	ap := &models.Appointment{
		LocationID: in.LocationID,
		StaffID:    in.StaffID,
		ClientID:   client.ID,
		ServiceID:  service.ID,
		BookingRef: uuid.NewString(),
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Source:     source,
		Notes:      in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap, []uint{service.ID}); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.StaffID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
