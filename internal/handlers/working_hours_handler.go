package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/middleware"
	"github.com/glowdesk/salon-platform/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var hours []models.WorkingHours
	if err := h.db.
		Where("staff_id = ?", p.UserID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_working_hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the staff member's weekly schedule wholesale.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	p, _ := middleware.CurrentPrincipal(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := h.db.Where("staff_id = ?", p.UserID).Delete(&models.WorkingHours{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_clear_existing_hours"})
		return
	}

	var toCreate []models.WorkingHours
	for _, d := range req.Days {
		toCreate = append(toCreate, models.WorkingHours{
			StaffID:    p.UserID,
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	if len(toCreate) > 0 {
		if err := h.db.Create(&toCreate).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
