package handlers

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/mailer"
	"github.com/docsmart-health/docsmart-api/internal/middleware"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/storage"
	ucAppointment "github.com/docsmart-health/docsmart-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
	mail     *mailer.Mailer

	bookUC      *ucAppointment.BookAppointment
	editUC      *ucAppointment.EditAppointment
	cancelUC    *ucAppointment.CancelAppointment
	deleteUC    *ucAppointment.DeleteAppointment
	checkSlotUC *ucAppointment.CheckSlot
	listUC      *ucAppointment.ListAppointments
}

func NewUserHandler(
	db *gorm.DB,
	uploader *storage.Uploader,
	mail *mailer.Mailer,
	bookUC *ucAppointment.BookAppointment,
	editUC *ucAppointment.EditAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	checkSlotUC *ucAppointment.CheckSlot,
	listUC *ucAppointment.ListAppointments,
) *UserHandler {
	return &UserHandler{
		db:          db,
		uploader:    uploader,
		mail:        mail,
		bookUC:      bookUC,
		editUC:      editUC,
		cancelUC:    cancelUC,
		deleteUC:    deleteUC,
		checkSlotUC: checkSlotUC,
		listUC:      listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DocID    uint   `json:"docId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}

type EditAppointmentRequest struct {
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}

type CancelAppointmentRequest struct {
	AppointmentID uint `json:"appointmentId" binding:"required"`
}

type CheckSlotRequest struct {
	DocID    uint   `json:"docId" binding:"required"`
	SlotDate string `json:"slotDate" binding:"required"`
	SlotTime string `json:"slotTime" binding:"required"`
}

type UpdateProfileRequest struct {
	Name         string `form:"name"`
	Phone        string `form:"phone"`
	Gender       string `form:"gender"`
	Dob          string `form:"dob"`
	AddressLine1 string `form:"addressLine1"`
	AddressLine2 string `form:"addressLine2"`
}

// ======================================================
// PROFILE
// ======================================================

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "User not found.")
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "User not found.")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "Invalid request.")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.Dob != "" {
		user.Dob = req.Dob
	}
	if req.AddressLine1 != "" {
		user.AddressLine1 = req.AddressLine1
	}
	if req.AddressLine2 != "" {
		user.AddressLine2 = req.AddressLine2
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := uploadProfileImage(c, h.uploader, file, "users")
		if err != nil {
			log.Printf("profile image upload failed: %v", err)
			httperr.Internal(c, "Failed to upload image.")
			return
		}
		user.Image = url
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "Failed to update profile.")
		return
	}

	httpresp.OK(c, gin.H{
		"message": "Profile updated",
		"user":    user,
	})
}

// ======================================================
// BOOK
// ======================================================

func (h *UserHandler) BookAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing booking details.")
		return
	}

	ap, err := h.bookUC.Execute(
		c.Request.Context(),
		ucAppointment.BookAppointmentInput{
			UserID:   userID,
			DoctorID: req.DocID,
			SlotDate: req.SlotDate,
			SlotTime: req.SlotTime,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err == nil {
		go h.mail.SendBookingConfirmation(user.Email, ap.Doctor.Name, ap.SlotDate, ap.SlotTime)
	}

	httpresp.Created(c, gin.H{
		"message":     "Appointment booked",
		"appointment": ap,
	})
}

// ======================================================
// LIST / GET
// ======================================================

func (h *UserHandler) ListAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	aps, err := h.listUC.ForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "Failed to list appointments.")
		return
	}

	httpresp.OK(c, gin.H{"appointments": aps})
}

func (h *UserHandler) GetAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Doctor").
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "Appointment not found.")
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// EDIT
// ======================================================

func (h *UserHandler) EditAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id.")
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing new date or time.")
		return
	}

	ap, err := h.editUC.Execute(
		c.Request.Context(),
		ucAppointment.EditAppointmentInput{
			UserID:        userID,
			AppointmentID: uint(id),
			NewSlotDate:   req.SlotDate,
			NewSlotTime:   req.SlotTime,
		},
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"message":     "Appointment updated",
		"appointment": ap,
	})
}

// ======================================================
// CANCEL / DELETE
// ======================================================

func (h *UserHandler) CancelAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		req.AppointmentID,
		middleware.RoleUser,
		&userID,
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err == nil {
		go h.mail.SendCancellation(user.Email, ap.Doctor.Name, ap.SlotDate, ap.SlotTime)
	}

	httpresp.Message(c, "Appointment cancelled")
}

func (h *UserHandler) DeleteAppointment(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("appointmentId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid appointment id.")
		return
	}

	if err := h.deleteUC.Execute(
		c.Request.Context(),
		uint(id),
		middleware.RoleUser,
		&userID,
	); err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.Message(c, "Appointment deleted")
}

// ======================================================
// SLOT PROBE
// ======================================================

func (h *UserHandler) CheckAppointmentSlot(c *gin.Context) {
	var req CheckSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing slot details.")
		return
	}

	free, err := h.checkSlotUC.Execute(
		c.Request.Context(),
		req.DocID,
		req.SlotDate,
		req.SlotTime,
	)
	if err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"available": free})
}
