package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/middleware"
)

// ======================================================
// SCOPE RESOLUTION
// ======================================================

// uintQuery reads an optional numeric query parameter; nil means the
// parameter was absent.
func uintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_" + key)
	}
	v := uint(n)
	return &v, nil
}

// resolveBusinessScope computes the caller's tenant scope from the
// token principal plus the optional business_id query parameter. The
// parameter only means something to platform admins; tenant users are
// pinned to their own business no matter what they send.
func resolveBusinessScope(c *gin.Context) (scope.Principal, scope.BusinessScope, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return scope.Principal{}, scope.BusinessScope{}, httperr.ErrBusiness("invalid_token")
	}

	requested, err := uintQuery(c, "business_id")
	if err != nil {
		return p, scope.BusinessScope{}, err
	}

	biz, err := scope.ResolveBusiness(p, requested)
	return p, biz, err
}

// resolveWriteBusinessID produces the single concrete tenant a write
// must land in. Platform admins writing without an explicit business
// fall back to the configured default tenant; no default means the
// write is rejected rather than guessed.
func resolveWriteBusinessID(c *gin.Context, cfg *config.Config) (scope.Principal, uint, error) {
	p, biz, err := resolveBusinessScope(c)
	if err != nil {
		return p, 0, err
	}

	if id, ok := biz.BusinessID(); ok {
		return p, id, nil
	}

	if cfg.DefaultBusinessID != 0 {
		return p, cfg.DefaultBusinessID, nil
	}

	return p, 0, httperr.ErrBusiness("business_id_required")
}

// writeScopeError maps scope and business failures onto HTTP. Scope
// denials are authorization failures; an empty tenant is the caller's
// own setup problem.
func writeScopeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scope.ErrNoBusinessAssociated):
		httperr.Forbidden(c, "no_business_associated", "Your account is not linked to a business.")
	case errors.Is(err, scope.ErrLocationForbidden):
		httperr.Forbidden(c, "location_forbidden", "That location belongs to another business.")
	case errors.Is(err, scope.ErrNoLocations):
		httperr.BadRequest(c, "no_locations", "Create a location first.")
	default:
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Invalid request.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}
