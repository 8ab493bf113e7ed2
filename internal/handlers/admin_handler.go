package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/audit"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/httpresp"
	"github.com/glowdesk/salon-platform/internal/models"
)

// AdminHandler serves the platform console. Every endpoint here sits
// behind RequirePlatformAdmin; an unrestricted read is still recorded
// in the audit trail.
type AdminHandler struct {
	db     *gorm.DB
	lister scope.LocationLister
	audit  *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, lister scope.LocationLister, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, lister: lister, audit: dispatcher}
}

func (h *AdminHandler) recordUnscopedRead(c *gin.Context, entity string) {
	p, _, err := resolveBusinessScope(c)
	if err != nil {
		return
	}
	h.audit.Dispatch(audit.Event{
		UserID: &p.UserID,
		Action: "unscoped_platform_read",
		Entity: entity,
	})
}

func (h *AdminHandler) ListBusinesses(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	q := h.db.Model(&models.Business{})
	if id, ok := biz.BusinessID(); ok {
		q = q.Where("id = ?", id)
	} else {
		h.recordUnscopedRead(c, "business")
	}

	var businesses []models.Business
	if err := q.Order("id ASC").Find(&businesses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_businesses", "Could not load businesses.")
		return
	}

	httpresp.List(c, businesses)
}

func (h *AdminHandler) ListClients(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	if biz.IsUnrestricted() {
		h.recordUnscopedRead(c, "client")
	}

	var clients []models.Client
	if err := biz.Apply(h.db.Model(&models.Client{})).
		Order("created_at DESC").
		Limit(500).
		Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not load clients.")
		return
	}

	httpresp.List(c, clients)
}

// ListAppointments scopes through locations since appointment rows
// carry no business_id of their own.
func (h *AdminHandler) ListAppointments(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	locScope, err := scope.ResolveLocations(c.Request.Context(), h.lister, biz, nil)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	if locScope.IsUnrestricted() {
		h.recordUnscopedRead(c, "appointment")
	}

	var appointments []models.Appointment
	if err := locScope.Apply(h.db.Model(&models.Appointment{})).
		Order("start_time DESC").
		Limit(500).
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.List(c, appointments)
}
