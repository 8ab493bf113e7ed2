package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/domain/scope"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/httpresp"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
	"github.com/glowdesk/salon-platform/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db     *gorm.DB
	config *config.Config
	lister scope.LocationLister

	create       *appointment.CreateAppointment
	cancel       *appointment.CancelAppointment
	complete     *appointment.CompleteAppointment
	confirm      *appointment.ConfirmAppointment
	byDate       *appointment.ListAppointmentsByDate
	byMonth      *appointment.ListAppointmentsByMonth
	availability *appointment.GetAvailability
}

func NewAppointmentHandler(
	db *gorm.DB,
	cfg *config.Config,
	lister scope.LocationLister,
	create *appointment.CreateAppointment,
	cancel *appointment.CancelAppointment,
	complete *appointment.CompleteAppointment,
	confirm *appointment.ConfirmAppointment,
	byDate *appointment.ListAppointmentsByDate,
	byMonth *appointment.ListAppointmentsByMonth,
	availability *appointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		config:       cfg,
		lister:       lister,
		create:       create,
		cancel:       cancel,
		complete:     complete,
		confirm:      confirm,
		byDate:       byDate,
		byMonth:      byMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	LocationID  uint   `json:"location_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

// mapAppointmentError translates usecase failures onto HTTP. Scope
// denials take precedence; everything else rides on the business code.
func mapAppointmentError(c *gin.Context, err error) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		writeScopeError(c, err)
		return
	}

	switch code {
	case "appointment_not_found", "business_not_found":
		httperr.NotFound(c, code, "Not found.")
	case "location_not_allowed":
		httperr.Forbidden(c, code, "That location belongs to another business.")
	case "time_conflict":
		httperr.Write(c, http.StatusConflict, code, "That slot is already taken.")
	default:
		httperr.BadRequest(c, code, "Invalid request.")
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:  businessID,
		LocationID:  req.LocationID,
		StaffID:     p.UserID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		Source:      "staff",
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), businessID, p.UserID, id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), businessID, p.UserID, id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), businessID, p.UserID, id)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LISTS
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	biz, locScope, businessID, ok := h.resolveReadScopes(c)
	if !ok {
		return
	}

	var shop models.Business
	if err := h.db.First(&shop, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	date, err := parseDateInBusiness(&shop, c.DefaultQuery("date", time.Now().Format("2006-01-02")))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	staffID := h.staffFilter(c, biz)

	items, err := h.byDate.Execute(c.Request.Context(), locScope, businessID, staffID, date)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	biz, locScope, businessID, ok := h.resolveReadScopes(c)
	if !ok {
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	staffID := h.staffFilter(c, biz)

	items, err := h.byMonth.Execute(c.Request.Context(), locScope, businessID, staffID, year, month)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	p, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	serviceID, err := uintQuery(c, "service_id")
	if err != nil || serviceID == nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	var shop models.Business
	if err := h.db.First(&shop, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	date, err := parseDateInBusiness(&shop, c.DefaultQuery("date", timezone.NowIn(shop.Timezone).Format("2006-01-02")))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	staffID := p.UserID
	if requested, err := uintQuery(c, "staff_id"); err == nil && requested != nil {
		staffID = *requested
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID: businessID,
		StaffID:    staffID,
		ServiceID:  *serviceID,
		Date:       date,
	})
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(n), true
}

// resolveReadScopes performs the full two-step derivation for list
// endpoints: tenant scope from the token, then the location-id set,
// optionally narrowed to a requested location.
func (h *AppointmentHandler) resolveReadScopes(c *gin.Context) (scope.BusinessScope, scope.LocationScope, uint, bool) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return scope.BusinessScope{}, scope.LocationScope{}, 0, false
	}

	requestedLocation, err := uintQuery(c, "location_id")
	if err != nil {
		writeScopeError(c, err)
		return scope.BusinessScope{}, scope.LocationScope{}, 0, false
	}

	locScope, err := scope.ResolveLocations(c.Request.Context(), h.lister, biz, requestedLocation)
	if err != nil {
		writeScopeError(c, err)
		return scope.BusinessScope{}, scope.LocationScope{}, 0, false
	}

	businessID, ok := biz.BusinessID()
	if !ok {
		// unrestricted reads still need a tenant for timezone handling
		if h.config.DefaultBusinessID == 0 {
			httperr.BadRequest(c, "business_id_required", "Pass business_id to read as platform admin.")
			return scope.BusinessScope{}, scope.LocationScope{}, 0, false
		}
		businessID = h.config.DefaultBusinessID
	}

	return biz, locScope, businessID, true
}

// staffFilter reads the optional staff_id query parameter; zero means
// every staff member in scope.
func (h *AppointmentHandler) staffFilter(c *gin.Context, biz scope.BusinessScope) uint {
	requested, err := uintQuery(c, "staff_id")
	if err != nil || requested == nil {
		return 0
	}
	if _, ok := biz.BusinessID(); !ok {
		return *requested
	}

	// the filter only applies to staff of the caller's own business
	businessID, _ := biz.BusinessID()
	var count int64
	h.db.Model(&models.User{}).
		Where("id = ? AND business_id = ?", *requested, businessID).
		Count(&count)
	if count == 0 {
		return 0
	}
	return *requested
}
