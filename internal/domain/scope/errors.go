package scope

import "errors"

var (
	// ErrNoBusinessAssociated marks a mis-provisioned tenant user; the
	// request must be rejected before any data is touched.
	ErrNoBusinessAssociated = errors.New("principal has no business associated")

	// ErrLocationForbidden is an authorization failure, not validation:
	// the requested location exists outside the caller's tenant.
	ErrLocationForbidden = errors.New("location does not belong to the authorized business")

	// ErrNoLocations means the tenant cannot be queried through
	// locations yet; callers should be told to create one first.
	ErrNoLocations = errors.New("business has no locations")
)
