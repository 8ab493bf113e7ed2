package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/domain/recurrence"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
	"github.com/glowdesk/salon-platform/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type SeriesHandler struct {
	db     *gorm.DB
	config *config.Config
	lister scope.LocationLister

	create *appointment.CreateSeries
	cancel *appointment.CancelSeries
	list   *appointment.ListSeries
}

func NewSeriesHandler(
	db *gorm.DB,
	cfg *config.Config,
	lister scope.LocationLister,
	create *appointment.CreateSeries,
	cancel *appointment.CancelSeries,
	list *appointment.ListSeries,
) *SeriesHandler {
	return &SeriesHandler{
		db:     db,
		config: cfg,
		lister: lister,
		create: create,
		cancel: cancel,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSeriesRequest struct {
	LocationID uint  `json:"location_id" binding:"required"`
	StaffID    *uint `json:"staff_id"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`

	ServiceIDs []uint `json:"service_ids" binding:"required"`

	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
	EndTime string `json:"end_time"`

	Recurrence recurrence.Rule `json:"recurrence" binding:"required"`

	Notes  string `json:"notes"`
	Source string `json:"source"`
}

// ======================================================
// CREATE
// ======================================================

func (h *SeriesHandler) Create(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var shop models.Business
	if err := h.db.First(&shop, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	start, err := parseDateTimeInBusiness(&shop, req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		return
	}

	// Explicit occurrence end overrides the service-duration default.
	var end *time.Time
	if req.EndTime != "" {
		t, err := parseDateTimeInBusiness(&shop, req.Date, req.EndTime)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
			return
		}
		end = &t
	}

	staffID, ok := h.resolveStaff(c, &req, p, businessID)
	if !ok {
		return
	}

	out, err := h.create.Execute(c.Request.Context(), appointment.CreateSeriesInput{
		BusinessID:  businessID,
		LocationID:  req.LocationID,
		StaffID:     staffID,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceIDs:  req.ServiceIDs,
		Start:       start,
		End:         end,
		Rule:        req.Recurrence,
		Notes:       req.Notes,
		Source:      req.Source,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"parent":    out.Parent,
		"child_ids": out.ChildIDs,
		"total":     out.Total,
	})
}

// ======================================================
// CANCEL
// ======================================================

// Cancel flags a whole series, or just its remaining occurrences when
// type=future. Missing parent_id and unknown type values are the
// caller's error, not a no-op.
func (h *SeriesHandler) Cancel(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	parentID, err := uintQuery(c, "parent_id")
	if err != nil || parentID == nil {
		httperr.BadRequest(c, "missing_parent_id", "parent_id is required.")
		return
	}

	mode, err := appointment.ParseCancelMode(c.Query("type"))
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	locScope, ok := h.resolveLocationScope(c)
	if !ok {
		return
	}

	var shop models.Business
	if err := h.db.First(&shop, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	count, err := h.cancel.Execute(
		c.Request.Context(),
		locScope,
		businessID,
		&p.UserID,
		*parentID,
		mode,
		timezone.NowIn(shop.Timezone),
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"cancelled_count": count,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *SeriesHandler) List(c *gin.Context) {
	parentID, ok := pathID(c)
	if !ok {
		return
	}

	locScope, scopeOK := h.resolveLocationScope(c)
	if !scopeOK {
		return
	}

	rows, err := h.list.Execute(c.Request.Context(), locScope, parentID)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  rows,
		"total": len(rows),
	})
}

// ======================================================
// HELPERS
// ======================================================

// resolveStaff picks who the series is booked for: the caller by
// default, or a requested colleague from the same business.
func (h *SeriesHandler) resolveStaff(
	c *gin.Context,
	req *CreateSeriesRequest,
	p scope.Principal,
	businessID uint,
) (uint, bool) {
	if req.StaffID == nil {
		return p.UserID, true
	}

	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND business_id = ?", *req.StaffID, businessID).
		Count(&count)
	if count == 0 {
		httperr.BadRequest(c, "staff_not_found", "Staff member not found in this business.")
		return 0, false
	}

	return *req.StaffID, true
}

func (h *SeriesHandler) resolveLocationScope(c *gin.Context) (scope.LocationScope, bool) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return scope.LocationScope{}, false
	}

	locScope, err := scope.ResolveLocations(c.Request.Context(), h.lister, biz, nil)
	if err != nil {
		writeScopeError(c, err)
		return scope.LocationScope{}, false
	}

	return locScope, true
}
