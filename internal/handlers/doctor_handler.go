package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/cache"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

// DoctorHandler serves the public doctor catalog. The list is read on every
// page load by the booking frontend, so it goes through a short-TTL cache.
type DoctorHandler struct {
	db          *gorm.DB
	doctorCache *cache.DoctorCache
}

func NewDoctorHandler(db *gorm.DB, doctorCache *cache.DoctorCache) *DoctorHandler {
	return &DoctorHandler{db: db, doctorCache: doctorCache}
}

func (h *DoctorHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if payload, ok := h.doctorCache.GetDoctorList(ctx); ok {
		c.Data(200, "application/json; charset=utf-8", []byte(payload))
		return
	}

	var doctors []models.Doctor
	if err := h.db.Order("id ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "Failed to list doctors.")
		return
	}

	body, err := json.Marshal(gin.H{
		"success": true,
		"doctors": doctors,
	})
	if err != nil {
		httperr.Internal(c, "Failed to list doctors.")
		return
	}

	h.doctorCache.SetDoctorList(ctx, string(body))
	c.Data(200, "application/json; charset=utf-8", body)
}
