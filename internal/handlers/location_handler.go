package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/httpresp"
	"github.com/glowdesk/salon-platform/internal/infra/cache"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

type LocationHandler struct {
	db     *gorm.DB
	config *config.Config
	cache  *cache.CachedLocationLister
}

func NewLocationHandler(db *gorm.DB, cfg *config.Config, lister *cache.CachedLocationLister) *LocationHandler {
	return &LocationHandler{db: db, config: cfg, cache: lister}
}

type LocationRequest struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

func (h *LocationHandler) List(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var locations []models.Location
	if err := biz.Apply(h.db.Model(&models.Location{})).
		Order("id ASC").
		Find(&locations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_locations", "Could not load locations.")
		return
	}

	httpresp.List(c, locations)
}

func (h *LocationHandler) Create(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	loc := models.Location{
		BusinessID: businessID,
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		Timezone:   req.Timezone,
		Active:     true,
	}

	if err := h.db.Create(&loc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_location", "Could not create location.")
		return
	}

	// the cached location-id set just changed
	h.cache.Invalidate(c.Request.Context(), businessID)

	c.JSON(http.StatusCreated, loc)
}

func (h *LocationHandler) Update(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	loc, ok := h.findOwnLocation(c, businessID)
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Timezone != "" && !timezone.IsValid(req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	loc.Name = req.Name
	loc.Address = req.Address
	loc.Phone = req.Phone
	loc.Timezone = req.Timezone

	if err := h.db.Save(loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Could not save location.")
		return
	}

	c.JSON(http.StatusOK, loc)
}

// Deactivate soft-disables a location. Appointments keep pointing at
// it, so rows are never deleted.
func (h *LocationHandler) Deactivate(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	loc, ok := h.findOwnLocation(c, businessID)
	if !ok {
		return
	}

	loc.Active = false
	if err := h.db.Save(loc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_location", "Could not save location.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), businessID)

	c.JSON(http.StatusOK, loc)
}

func (h *LocationHandler) findOwnLocation(c *gin.Context, businessID uint) (*models.Location, bool) {
	id, err := uintQuery(c, "location_id")
	if err != nil || id == nil {
		httperr.BadRequest(c, "invalid_location_id", "location_id is required.")
		return nil, false
	}

	var loc models.Location
	if err := h.db.
		Where("id = ? AND business_id = ?", *id, businessID).
		First(&loc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "location_not_found", "Location not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_location", "Could not load location.")
		return nil, false
	}
	return &loc, true
}
