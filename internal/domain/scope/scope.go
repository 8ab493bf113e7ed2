package scope

import (
	"context"

	"gorm.io/gorm"
)

// ===============================
// Business scope
// ===============================

// BusinessScope is the tenant predicate ANDed into every query over
// tenant-owned tables. The unrestricted state is a distinct, named
// capability ("unscoped platform read") and never the accidental
// absence of a filter value.
type BusinessScope struct {
	unrestricted bool
	businessID   uint
}

func ForBusiness(id uint) BusinessScope {
	return BusinessScope{businessID: id}
}

func AllBusinesses() BusinessScope {
	return BusinessScope{unrestricted: true}
}

func (s BusinessScope) IsUnrestricted() bool {
	return s.unrestricted
}

// BusinessID returns the concrete tenant, false when unrestricted.
func (s BusinessScope) BusinessID() (uint, bool) {
	if s.unrestricted {
		return 0, false
	}
	return s.businessID, true
}

// Apply ANDs the tenant predicate into a query whose table carries a
// business_id column. Unrestricted applies nothing.
func (s BusinessScope) Apply(q *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return q
	}
	return q.Where("business_id = ?", s.businessID)
}

// ResolveBusiness computes the caller's effective tenant scope.
//
// Platform admins may pin an explicit business or read platform-wide;
// tenant users are always and only scoped to their own business, no
// matter what the request asked for. A tenant user without a business
// is rejected before any query runs.
func ResolveBusiness(p Principal, requested *uint) (BusinessScope, error) {
	if p.IsPlatformAdmin() {
		if requested != nil {
			return ForBusiness(*requested), nil
		}
		return AllBusinesses(), nil
	}

	if p.BusinessID == nil {
		return BusinessScope{}, ErrNoBusinessAssociated
	}

	return ForBusiness(*p.BusinessID), nil
}

// ===============================
// Location scope
// ===============================

// LocationLister resolves the set of location ids a business owns.
// Backed by the gorm repository, optionally behind the redis cache.
type LocationLister interface {
	ListLocationIDs(ctx context.Context, businessID uint) ([]uint, error)
}

// LocationScope constrains entities that hang off a location rather
// than carrying a business_id of their own (appointments, mainly).
type LocationScope struct {
	unrestricted bool
	ids          []uint
}

func (s LocationScope) IsUnrestricted() bool {
	return s.unrestricted
}

func (s LocationScope) IDs() []uint {
	return s.ids
}

func (s LocationScope) Contains(locationID uint) bool {
	if s.unrestricted {
		return true
	}
	for _, id := range s.ids {
		if id == locationID {
			return true
		}
	}
	return false
}

func (s LocationScope) Apply(q *gorm.DB) *gorm.DB {
	if s.unrestricted {
		return q
	}
	return q.Where("location_id IN ?", s.ids)
}

// ResolveLocations performs the two-step derivation: resolve the
// tenant's location-id set first, then narrow to the explicitly
// requested location after verifying it belongs to the tenant. The
// lookup and the query it guards are read-then-read; staleness of the
// set within one request is acceptable.
func ResolveLocations(
	ctx context.Context,
	lister LocationLister,
	biz BusinessScope,
	requestedLocation *uint,
) (LocationScope, error) {

	if biz.IsUnrestricted() {
		if requestedLocation != nil {
			return LocationScope{ids: []uint{*requestedLocation}}, nil
		}
		return LocationScope{unrestricted: true}, nil
	}

	businessID, _ := biz.BusinessID()

	ids, err := lister.ListLocationIDs(ctx, businessID)
	if err != nil {
		return LocationScope{}, err
	}
	if len(ids) == 0 {
		return LocationScope{}, ErrNoLocations
	}

	if requestedLocation != nil {
		for _, id := range ids {
			if id == *requestedLocation {
				return LocationScope{ids: []uint{*requestedLocation}}, nil
			}
		}
		return LocationScope{}, ErrLocationForbidden
	}

	return LocationScope{ids: ids}, nil
}
