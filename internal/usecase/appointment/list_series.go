package appointment

import (
	"context"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/dto"
	"github.com/glowdesk/salon-platform/internal/httperr"
)

type ListSeries struct {
	repo domain.Repository
}

func NewListSeries(repo domain.Repository) *ListSeries {
	return &ListSeries{repo: repo}
}

// Execute returns every occurrence of a series, parent first, after
// checking the parent sits inside the caller's location scope.
func (uc *ListSeries) Execute(
	ctx context.Context,
	locScope scope.LocationScope,
	parentID uint,
) ([]dto.AppointmentListDTO, error) {

	parent, err := uc.repo.GetAppointment(ctx, parentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !locScope.Contains(parent.LocationID) {
		return nil, scope.ErrLocationForbidden
	}

	rows, err := uc.repo.ListSeries(ctx, parentID)
	if err != nil {
		return nil, err
	}

	return toListDTOs(rows), nil
}
