package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/middleware"
	"github.com/glowdesk/salon-platform/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	var user models.User
	if err := h.db.Preload("Business").First(&user, p.UserID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"role":        user.Role,
			"business_id": user.BusinessID,
		},
	}
	if user.Business != nil {
		resp["business"] = gin.H{
			"id":       user.Business.ID,
			"name":     user.Business.Name,
			"slug":     user.Business.Slug,
			"phone":    user.Business.Phone,
			"address":  user.Business.Address,
			"timezone": user.Business.Timezone,
		}
	}

	c.JSON(http.StatusOK, resp)
}
