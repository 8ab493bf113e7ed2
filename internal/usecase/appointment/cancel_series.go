package appointment

import (
	"context"
	"time"

	"github.com/glowdesk/salon-platform/internal/audit"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
)

// ======================================================
// CANCEL MODE
// ======================================================

type CancelMode string

const (
	CancelAll    CancelMode = "all"
	CancelFuture CancelMode = "future"
)

// ParseCancelMode accepts the wire value; empty defaults to "all",
// anything else is rejected.
func ParseCancelMode(raw string) (CancelMode, error) {
	switch raw {
	case "", string(CancelAll):
		return CancelAll, nil
	case string(CancelFuture):
		return CancelFuture, nil
	}
	return "", httperr.ErrBusiness("invalid_cancel_type")
}

// ======================================================
// USE CASE
// ======================================================

type CancelSeries struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelSeries(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelSeries {
	return &CancelSeries{
		repo:  repo,
		audit: audit,
	}
}

// Execute flags the parent row and every child pointing at it as
// cancelled. Passing a child id cancels just that row, since nothing
// references a child. Rows stay in place, only their status changes.
func (uc *CancelSeries) Execute(
	ctx context.Context,
	locScope scope.LocationScope,
	businessID uint,
	userID *uint,
	parentID uint,
	mode CancelMode,
	now time.Time,
) (int64, error) {

	parent, err := uc.repo.GetAppointment(ctx, parentID)
	if err != nil {
		return 0, httperr.ErrBusiness("appointment_not_found")
	}

	if !locScope.Contains(parent.LocationID) {
		return 0, scope.ErrLocationForbidden
	}

	count, err := uc.repo.CancelSeries(ctx, parentID, mode == CancelFuture, now)
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     userID,
		Action:     "appointment_series_cancelled",
		Entity:     "appointment",
		EntityID:   &parent.ID,
		Metadata: map[string]any{
			"mode":      string(mode),
			"cancelled": count,
		},
	})

	return count, nil
}
