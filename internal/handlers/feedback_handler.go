package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/validators"
)

type FeedbackHandler struct {
	db *gorm.DB
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	return &FeedbackHandler{db: db}
}

type FeedbackRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (r *FeedbackRequest) validate() string {
	if msg := validators.ValidateName(r.Name); msg != "" {
		return msg
	}
	if msg := validators.ValidateEmail(r.Email); msg != "" {
		return msg
	}
	if len(strings.TrimSpace(r.Message)) == 0 {
		return "Message is required."
	}
	if len(r.Message) > 1000 {
		return "Message must be at most 1000 characters."
	}
	return ""
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing feedback details.")
		return
	}

	if msg := req.validate(); msg != "" {
		httperr.BadRequest(c, msg)
		return
	}

	fb := models.Feedback{
		Name:    req.Name,
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Message: req.Message,
	}

	if err := h.db.Create(&fb).Error; err != nil {
		httperr.Internal(c, "Failed to save feedback.")
		return
	}

	httpresp.Created(c, gin.H{
		"message":  "Feedback submitted",
		"feedback": fb,
	})
}

func (h *FeedbackHandler) List(c *gin.Context) {
	var items []models.Feedback
	if err := h.db.Order("created_at DESC").Find(&items).Error; err != nil {
		httperr.Internal(c, "Failed to list feedback.")
		return
	}

	httpresp.OK(c, gin.H{"feedback": items})
}

func (h *FeedbackHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid feedback id.")
		return
	}

	var fb models.Feedback
	if err := h.db.First(&fb, id).Error; err != nil {
		httperr.NotFound(c, "Feedback not found.")
		return
	}

	httpresp.OK(c, gin.H{"feedback": fb})
}

func (h *FeedbackHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid feedback id.")
		return
	}

	var fb models.Feedback
	if err := h.db.First(&fb, id).Error; err != nil {
		httperr.NotFound(c, "Feedback not found.")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing feedback details.")
		return
	}

	if msg := req.validate(); msg != "" {
		httperr.BadRequest(c, msg)
		return
	}

	fb.Name = req.Name
	fb.Email = strings.ToLower(strings.TrimSpace(req.Email))
	fb.Message = req.Message

	if err := h.db.Save(&fb).Error; err != nil {
		httperr.Internal(c, "Failed to update feedback.")
		return
	}

	httpresp.OK(c, gin.H{
		"message":  "Feedback updated",
		"feedback": fb,
	})
}

func (h *FeedbackHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid feedback id.")
		return
	}

	res := h.db.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		httperr.Internal(c, "Failed to delete feedback.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "Feedback not found.")
		return
	}

	httpresp.Message(c, "Feedback deleted")
}
