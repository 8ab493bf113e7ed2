package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/timezone"
)

type BusinessHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewBusinessHandler(db *gorm.DB, cfg *config.Config) *BusinessHandler {
	return &BusinessHandler{db: db, config: cfg}
}

type UpdateBusinessConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load business.")
		return
	}

	c.JSON(http.StatusOK, biz)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var biz models.Business
	if err := h.db.First(&biz, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load business.")
		return
	}

	var req UpdateBusinessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil && *req.Name != "" {
		biz.Name = *req.Name
	}
	if req.Phone != nil {
		biz.Phone = *req.Phone
	}
	if req.Address != nil {
		biz.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		biz.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive minutes.")
			return
		}
		biz.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&biz).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save business settings.")
		return
	}

	c.JSON(http.StatusOK, biz)
}
