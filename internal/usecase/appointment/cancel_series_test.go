package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowdesk/salon-platform/internal/audit"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
)

func TestParseCancelMode(t *testing.T) {
	mode, err := ParseCancelMode("")
	require.NoError(t, err)
	assert.Equal(t, CancelAll, mode)

	mode, err = ParseCancelMode("future")
	require.NoError(t, err)
	assert.Equal(t, CancelFuture, mode)

	_, err = ParseCancelMode("some")
	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_cancel_type", code)
}

func bookedSeries(t *testing.T, repo *fakeRepo) *CreateSeriesOutput {
	t.Helper()
	uc := NewCreateSeries(repo, audit.NewDispatcher(nil, nil))
	out, err := uc.Execute(context.Background(), seriesInput())
	require.NoError(t, err)
	return out
}

func tenantScope(t *testing.T, repo *fakeRepo, businessID uint) scope.LocationScope {
	t.Helper()
	locScope, err := scope.ResolveLocations(
		context.Background(), repo, scope.ForBusiness(businessID), nil,
	)
	require.NoError(t, err)
	return locScope
}

func TestCancelSeries_All(t *testing.T) {
	repo := seededRepo()
	series := bookedSeries(t, repo)
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	count, err := uc.Execute(
		context.Background(),
		tenantScope(t, repo, 1),
		1, nil,
		series.Parent.ID,
		CancelAll,
		series.Parent.StartTime,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	rows, err := repo.ListSeries(context.Background(), series.Parent.ID)
	require.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "cancelled", row.Status)
		assert.NotNil(t, row.CancelledAt)
	}
}

func TestCancelSeries_FutureOnly(t *testing.T) {
	repo := seededRepo()
	series := bookedSeries(t, repo) // weekly, parent + 3 children
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	// "now" sits between the second and third occurrence
	now := series.Parent.StartTime.AddDate(0, 0, 10)

	count, err := uc.Execute(
		context.Background(),
		tenantScope(t, repo, 1),
		1, nil,
		series.Parent.ID,
		CancelFuture,
		now,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	rows, err := repo.ListSeries(context.Background(), series.Parent.ID)
	require.NoError(t, err)
	for _, row := range rows {
		if row.StartTime.Before(now) {
			assert.Equal(t, "booked", row.Status)
		} else {
			assert.Equal(t, "cancelled", row.Status)
		}
	}
}

func TestCancelSeries_Idempotent(t *testing.T) {
	repo := seededRepo()
	series := bookedSeries(t, repo)
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	locScope := tenantScope(t, repo, 1)
	now := series.Parent.StartTime

	count, err := uc.Execute(context.Background(), locScope, 1, nil, series.Parent.ID, CancelAll, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	// a second pass finds nothing left to cancel
	count, err = uc.Execute(context.Background(), locScope, 1, nil, series.Parent.ID, CancelAll, now)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCancelSeries_ChildIDCancelsOnlyThatRow(t *testing.T) {
	repo := seededRepo()
	series := bookedSeries(t, repo)
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	childID := series.ChildIDs[0]
	count, err := uc.Execute(
		context.Background(),
		tenantScope(t, repo, 1),
		1, nil,
		childID,
		CancelAll,
		series.Parent.StartTime,
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	parent, err := repo.GetAppointment(context.Background(), series.Parent.ID)
	require.NoError(t, err)
	assert.Equal(t, "booked", parent.Status)
}

func TestCancelSeries_OutsideScope(t *testing.T) {
	repo := seededRepo()
	series := bookedSeries(t, repo)
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	// caller scoped to business 2, whose only location is 11
	_, err := uc.Execute(
		context.Background(),
		tenantScope(t, repo, 2),
		2, nil,
		series.Parent.ID,
		CancelAll,
		series.Parent.StartTime,
	)
	assert.True(t, errors.Is(err, scope.ErrLocationForbidden))
}

func TestCancelSeries_UnknownParent(t *testing.T) {
	repo := seededRepo()
	uc := NewCancelSeries(repo, audit.NewDispatcher(nil, nil))

	_, err := uc.Execute(
		context.Background(),
		tenantScope(t, repo, 1),
		1, nil,
		999,
		CancelAll,
		time.Now(),
	)
	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "appointment_not_found", code)
}
