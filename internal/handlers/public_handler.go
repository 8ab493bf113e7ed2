package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/glowdesk/salon-platform/internal/domain/appointment"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
	"github.com/glowdesk/salon-platform/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler is the unauthenticated booking surface, addressed by
// business slug.
type PublicHandler struct {
	db *gorm.DB

	create       *appointment.CreateAppointment
	availability *appointment.GetAvailability
}

func NewPublicHandler(
	db *gorm.DB,
	create *appointment.CreateAppointment,
	availability *appointment.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		create:       create,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// ======================================================
// LOOKUPS
// ======================================================

func (h *PublicHandler) findBusiness(c *gin.Context) (*models.Business, bool) {
	slug := c.Param("slug")

	var biz models.Business
	if err := h.db.Where("slug = ?", slug).First(&biz).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil, false
	}
	return &biz, true
}

// findStaff picks the bookable staff member for a public request: the
// tenant owner, unless the caller asked for someone specific.
func (h *PublicHandler) findStaff(c *gin.Context, biz *models.Business) (*models.User, bool) {
	if requested, err := uintQuery(c, "staff_id"); err == nil && requested != nil {
		var staff models.User
		if err := h.db.
			Where("id = ? AND business_id = ?", *requested, biz.ID).
			First(&staff).Error; err == nil {
			return &staff, true
		}
		httperr.BadRequest(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}

	var owner models.User
	if err := h.db.
		Where("business_id = ? AND role = ?", biz.ID, "owner").
		First(&owner).Error; err != nil {
		httperr.BadRequest(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}
	return &owner, true
}

func (h *PublicHandler) findMainLocation(c *gin.Context, biz *models.Business) (*models.Location, bool) {
	var loc models.Location
	if err := h.db.
		Where("business_id = ? AND active = true", biz.ID).
		Order("id ASC").
		First(&loc).Error; err != nil {
		httperr.BadRequest(c, "no_locations", "This business has no bookable location.")
		return nil, false
	}
	return &loc, true
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("business_id = ? AND active = true", biz.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not load services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": gin.H{
			"id":      biz.ID,
			"name":    biz.Name,
			"slug":    biz.Slug,
			"phone":   biz.Phone,
			"address": biz.Address,
		},
		"services": services,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	serviceID, err := uintQuery(c, "service_id")
	if err != nil || serviceID == nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	staff, ok := h.findStaff(c, biz)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BusinessID: biz.ID,
			StaffID:    staff.ID,
			ServiceID:  *serviceID,
			Date:       date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Unknown service.")
			return
		}
		httperr.Internal(c, "availability_failed", "Could not compute time slots.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE APPOINTMENT
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	biz, ok := h.findBusiness(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	staff, ok := h.findStaff(c, biz)
	if !ok {
		return
	}

	loc, ok := h.findMainLocation(c, biz)
	if !ok {
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		appointment.CreateAppointmentInput{
			BusinessID:  biz.ID,
			LocationID:  loc.ID,
			StaffID:     staff.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
			Source:      "public",
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking_ref": ap.BookingRef,
		"appointment": ap,
	})
}
