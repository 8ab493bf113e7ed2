package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/httperr"
	"github.com/glowdesk/salon-platform/internal/models"
)

type ClientHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewClientHandler(db *gorm.DB, cfg *config.Config) *ClientHandler {
	return &ClientHandler{db: db, config: cfg}
}

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email"`
}

func (h *ClientHandler) List(c *gin.Context) {
	_, biz, err := resolveBusinessScope(c)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := biz.Apply(h.db.Model(&models.Client{}))

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Could not load clients.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	_, businessID, err := resolveWriteBusinessID(c, h.config)
	if err != nil {
		writeScopeError(c, err)
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	// the phone is the dedup key within a tenant
	var existing models.Client
	err = h.db.
		Where("business_id = ? AND phone = ?", businessID, req.Phone).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if err != gorm.ErrRecordNotFound {
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}

	client := models.Client{
		BusinessID: businessID,
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}
