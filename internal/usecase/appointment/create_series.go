package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowdesk/salon-platform/internal/audit"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/recurrence"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateSeriesInput struct {
	BusinessID uint
	LocationID uint
	StaffID    uint

	ClientID    *uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceIDs []uint

	Start time.Time
	End   *time.Time

	Rule recurrence.Rule

	Notes  string
	Source string
}

type CreateSeriesOutput struct {
	Parent   *models.Appointment
	ChildIDs []uint
	Total    int
}

// ======================================================
// USE CASE
// ======================================================

// CreateSeries books a recurring appointment: the first occurrence
// becomes the parent row, the generated dates become children linked
// back to it, and the whole batch is written in one transaction.
type CreateSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSeries {
	return &CreateSeries{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateSeries) Execute(
	ctx context.Context,
	in CreateSeriesInput,
) (*CreateSeriesOutput, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_services")
	}

	if _, err := uc.repo.GetBusinessByID(ctx, in.BusinessID); err != nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	// The location is the tenancy anchor: a location outside the
	// caller's business is an authorization failure, not validation.
	if _, err := uc.repo.GetLocation(ctx, in.LocationID, in.BusinessID); err != nil {
		return nil, httperr.ErrBusiness("location_not_allowed")
	}

	services, err := uc.repo.GetServices(ctx, in.BusinessID, in.ServiceIDs)
	if err != nil || len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	var totalDuration time.Duration
	for _, svc := range services {
		totalDuration += time.Duration(svc.DurationMin) * time.Minute
	}

	end := in.Start.Add(totalDuration)
	if in.End != nil {
		if !in.End.After(in.Start) {
			return nil, httperr.ErrBusiness("invalid_time_range")
		}
		end = *in.End
	}
	occurrenceDuration := end.Sub(in.Start)

	if err := in.Rule.Validate(); err != nil {
		return nil, err
	}

	// The rule's occurrence count bounds the whole series and the
	// parent is its first occurrence, so the generator is asked for
	// one fewer date.
	childRule := in.Rule
	if childRule.Occurrences > 0 {
		childRule.Occurrences--
	}

	var dates []time.Time
	if in.Rule.Occurrences != 1 {
		dates, err = recurrence.Generate(in.Start, childRule)
		if err != nil {
			return nil, err
		}
	}

	serialized, err := in.Rule.Serialize()
	if err != nil {
		return nil, err
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	source := in.Source
	if source == "" {
		source = "staff"
	}

	parent := &models.Appointment{
		LocationID:     in.LocationID,
		StaffID:        in.StaffID,
		ClientID:       client.ID,
		ServiceID:      in.ServiceIDs[0],
		RecurrenceRule: serialized,
		BookingRef:     uuid.NewString(),
		StartTime:      in.Start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Source:         source,
		Notes:          in.Notes,
	}

	children := make([]*models.Appointment, 0, len(dates))
	for _, d := range dates {
		children = append(children, &models.Appointment{
			LocationID:     in.LocationID,
			StaffID:        in.StaffID,
			ClientID:       client.ID,
			ServiceID:      in.ServiceIDs[0],
			RecurrenceRule: serialized,
			BookingRef:     uuid.NewString(),
			StartTime:      d,
			EndTime:        d.Add(occurrenceDuration),
			Status:         string(domain.InitialStatus()),
			Source:         source,
			Notes:          in.Notes,
		})
	}

	if err := uc.repo.CreateSeries(ctx, parent, children, in.ServiceIDs); err != nil {
		return nil, err
	}

	childIDs := make([]uint, 0, len(children))
	for _, child := range children {
		childIDs = append(childIDs, child.ID)
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.StaffID,
		Action:     "appointment_series_created",
		Entity:     "appointment",
		EntityID:   &parent.ID,
		Metadata: map[string]any{
			"frequency":   in.Rule.Frequency,
			"occurrences": 1 + len(childIDs),
		},
	})

	return &CreateSeriesOutput{
		Parent:   parent,
		ChildIDs: childIDs,
		Total:    1 + len(childIDs),
	}, nil
}

func (uc *CreateSeries) resolveClient(
	ctx context.Context,
	in CreateSeriesInput,
) (*models.Client, error) {

	if in.ClientID != nil {
		client, err := uc.repo.GetClient(ctx, in.BusinessID, *in.ClientID)
		if err != nil {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return client, nil
	}

	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, httperr.ErrBusiness("missing_client")
	}

	return uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
}
