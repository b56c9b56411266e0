package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/config"
	dbpkg "github.com/docsmart-health/docsmart-api/internal/db"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/middleware"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/validators"
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
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- User ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing details.")
		return
	}

	if msg := validators.ValidateName(req.Name); msg != "" {
		httperr.BadRequest(c, msg)
		return
	}
	if msg := validators.ValidateEmail(req.Email); msg != "" {
		httperr.BadRequest(c, msg)
		return
	}
	if msg := validators.ValidatePassword(req.Password); msg != "" {
		httperr.BadRequest(c, msg)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "Email domain does not appear to be valid.")
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Something went wrong.")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&user).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.BadRequest(c, "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "Failed to create account.")
		return
	}

	token, err := h.generateUserToken(&user)
	if err != nil {
		httperr.Internal(c, "Failed to generate token.")
		return
	}

	httpresp.Created(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing details.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.Unauthorized(c, "Invalid credentials.")
			return
		}
		httperr.Internal(c, "Something went wrong.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "Invalid credentials.")
		return
	}

	token, err := h.generateUserToken(&user)
	if err != nil {
		httperr.Internal(c, "Failed to generate token.")
		return
	}

	httpresp.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// --------- Admin ---------

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing details.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if h.config.AdminPassword == "" ||
		email != strings.ToLower(h.config.AdminEmail) ||
		req.Password != h.config.AdminPassword {

		httperr.Unauthorized(c, "Invalid credentials.")
		return
	}

	token, err := h.generateAdminToken(email)
	if err != nil {
		httperr.Internal(c, "Failed to generate token.")
		return
	}

	httpresp.OK(c, gin.H{"token": token})
}

// --------- JWT ---------

func (h *AuthHandler) generateUserToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": middleware.RoleUser,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func (h *AuthHandler) generateAdminToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": middleware.RoleAdmin,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
