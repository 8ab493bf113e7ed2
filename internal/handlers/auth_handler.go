package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/glowdesk/salon-platform/internal/config"
	"github.com/glowdesk/salon-platform/internal/models"
	"github.com/glowdesk/salon-platform/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

// --------- Requests ---------

type RegisterRequest struct {
	BusinessName    string `json:"business_name" binding:"required"`
	BusinessSlug    string `json:"business_slug" binding:"required"`
	BusinessPhone   string `json:"business_phone"`
	BusinessAddress string `json:"business_address"`
	Timezone        string `json:"timezone"`

	LocationName string `json:"location_name"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register provisions a tenant in one shot: the business, its main
// location and the owner account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.BusinessSlug))

	var count int64
	h.db.Model(&models.Business{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "The email domain does not look valid.",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	biz := models.Business{
		Name:     req.BusinessName,
		Slug:     slug,
		Phone:    req.BusinessPhone,
		Address:  req.BusinessAddress,
		Timezone: req.Timezone,
	}

	locationName := req.LocationName
	if locationName == "" {
		locationName = "Main"
	}

	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&biz).Error; err != nil {
			return err
		}

		loc := models.Location{
			BusinessID: biz.ID,
			Name:       locationName,
			Address:    req.BusinessAddress,
			Phone:      req.BusinessPhone,
			Timezone:   req.Timezone,
			Active:     true,
		}
		if err := tx.Create(&loc).Error; err != nil {
			return err
		}

		user = models.User{
			BusinessID:   &biz.ID,
			Name:         req.Name,
			Email:        email,
			PasswordHash: string(hashed),
			Phone:        req.Phone,
			Role:         "owner",
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"business_id": user.BusinessID,
		},
		"business": gin.H{
			"id":      biz.ID,
			"name":    biz.Name,
			"slug":    biz.Slug,
			"phone":   biz.Phone,
			"address": biz.Address,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Business").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"business_id": user.BusinessID,
			"role":        user.Role,
		},
		"token": token,
	}
	if user.Business != nil {
		resp["business"] = gin.H{
			"id":      user.Business.ID,
			"name":    user.Business.Name,
			"slug":    user.Business.Slug,
			"phone":   user.Business.Phone,
			"address": user.Business.Address,
		}
	}

	c.JSON(http.StatusOK, resp)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	// platform admins have no tenant, so no businessId claim
	if user.BusinessID != nil {
		claims["businessId"] = *user.BusinessID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
