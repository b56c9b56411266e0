package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns audit entries newest first, paginated with ?page= and ?limit=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := h.db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "Failed to count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := h.db.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "Failed to list audit logs.")
		return
	}

	httpresp.OK(c, gin.H{
		"logs":  logs,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
