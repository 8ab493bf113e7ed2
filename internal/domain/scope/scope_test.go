package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestResolveBusiness_TenantUserIgnoresRequestedOverride(t *testing.T) {
	p := Principal{UserID: 1, BusinessID: uintPtr(10), Role: RoleOwner}

	s, err := ResolveBusiness(p, uintPtr(99))
	require.NoError(t, err)

	id, ok := s.BusinessID()
	require.True(t, ok)
	assert.Equal(t, uint(10), id)
	assert.False(t, s.IsUnrestricted())
}

func TestResolveBusiness_TenantUserWithoutBusinessFailsFast(t *testing.T) {
	p := Principal{UserID: 1, Role: RoleStaff}

	_, err := ResolveBusiness(p, nil)
	assert.ErrorIs(t, err, ErrNoBusinessAssociated)
}

func TestResolveBusiness_AdminUnrestrictedIsDistinctSentinel(t *testing.T) {
	p := Principal{UserID: 1, Role: RolePlatformAdmin}

	s, err := ResolveBusiness(p, nil)
	require.NoError(t, err)
	assert.True(t, s.IsUnrestricted())

	// Not a filter to an empty value.
	_, ok := s.BusinessID()
	assert.False(t, ok)
}

func TestResolveBusiness_AdminWithRequestedBusiness(t *testing.T) {
	p := Principal{UserID: 1, Role: RolePlatformAdmin}

	s, err := ResolveBusiness(p, uintPtr(7))
	require.NoError(t, err)

	id, ok := s.BusinessID()
	require.True(t, ok)
	assert.Equal(t, uint(7), id)
}

// ===============================
// Location scope
// ===============================

type staticLister struct {
	ids   map[uint][]uint
	err   error
	calls int
}

func (l *staticLister) ListLocationIDs(_ context.Context, businessID uint) ([]uint, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.ids[businessID], nil
}

func TestResolveLocations_TenantSet(t *testing.T) {
	lister := &staticLister{ids: map[uint][]uint{10: {1, 2, 3}}}

	s, err := ResolveLocations(context.Background(), lister, ForBusiness(10), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, s.IDs())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))
}

func TestResolveLocations_ExplicitLocationVerified(t *testing.T) {
	lister := &staticLister{ids: map[uint][]uint{10: {1, 2, 3}}}

	s, err := ResolveLocations(context.Background(), lister, ForBusiness(10), uintPtr(2))
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, s.IDs())
}

func TestResolveLocations_ForeignLocationForbidden(t *testing.T) {
	lister := &staticLister{ids: map[uint][]uint{10: {1, 2, 3}}}

	_, err := ResolveLocations(context.Background(), lister, ForBusiness(10), uintPtr(42))
	assert.ErrorIs(t, err, ErrLocationForbidden)
}

func TestResolveLocations_EmptyTenant(t *testing.T) {
	lister := &staticLister{ids: map[uint][]uint{}}

	_, err := ResolveLocations(context.Background(), lister, ForBusiness(10), nil)
	assert.ErrorIs(t, err, ErrNoLocations)
}

func TestResolveLocations_UnrestrictedSkipsLookup(t *testing.T) {
	lister := &staticLister{err: errors.New("must not be called")}

	s, err := ResolveLocations(context.Background(), lister, AllBusinesses(), nil)
	require.NoError(t, err)
	assert.True(t, s.IsUnrestricted())
	assert.Zero(t, lister.calls)
	assert.True(t, s.Contains(12345))
}
