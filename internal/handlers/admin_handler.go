package handlers

import (
	"log"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	"github.com/docsmart-health/docsmart-api/internal/cache"
	dbpkg "github.com/docsmart-health/docsmart-api/internal/db"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/pdf"
	"github.com/docsmart-health/docsmart-api/internal/storage"
	ucAppointment "github.com/docsmart-health/docsmart-api/internal/usecase/appointment"
	"github.com/docsmart-health/docsmart-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db          *gorm.DB
	uploader    *storage.Uploader
	doctorCache *cache.DoctorCache
	audit       *audit.Dispatcher

	cancelUC    *ucAppointment.CancelAppointment
	completeUC  *ucAppointment.CompleteAppointment
	listUC      *ucAppointment.ListAppointments
	dashboardUC *ucAppointment.Dashboard
}

func NewAdminHandler(
	db *gorm.DB,
	uploader *storage.Uploader,
	doctorCache *cache.DoctorCache,
	auditDispatcher *audit.Dispatcher,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointments,
	dashboardUC *ucAppointment.Dashboard,
) *AdminHandler {
	return &AdminHandler{
		db:          db,
		uploader:    uploader,
		doctorCache: doctorCache,
		audit:       auditDispatcher,
		cancelUC:    cancelUC,
		completeUC:  completeUC,
		listUC:      listUC,
		dashboardUC: dashboardUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AddDoctorRequest struct {
	Name         string `form:"name"`
	Email        string `form:"email"`
	Password     string `form:"password"`
	Speciality   string `form:"speciality"`
	Degree       string `form:"degree"`
	Experience   string `form:"experience"`
	About        string `form:"about"`
	Fees         string `form:"fees"`
	AddressLine1 string `form:"addressLine1"`
	AddressLine2 string `form:"addressLine2"`
}

type ChangeAvailabilityRequest struct {
	DocID uint `json:"docId" binding:"required"`
}

type AdminCancelRequest struct {
	AppointmentID uint `json:"appointmentId" binding:"required"`
}

type AdminCompleteRequest struct {
	AppointmentID uint `json:"appointmentId" binding:"required"`
}

// ======================================================
// DOCTORS
// ======================================================

func (h *AdminHandler) AddDoctor(c *gin.Context) {
	var req AddDoctorRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "Invalid request.")
		return
	}

	// Server-side mirror of the form validation; the client copy is a
	// convenience, not a boundary.
	fieldChecks := []string{
		validators.ValidateName(req.Name),
		validators.ValidateEmail(req.Email),
		validators.ValidatePassword(req.Password),
		validators.ValidateDegree(req.Degree),
		validators.ValidateFees(req.Fees),
		validators.ValidateAddress(req.AddressLine1),
		validators.ValidateAddress(req.AddressLine2),
	}
	for _, msg := range fieldChecks {
		if msg != "" {
			httperr.BadRequest(c, msg)
			return
		}
	}

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "Doctor image is required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Doctor{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "A doctor with this email already exists.")
		return
	}

	fees, _ := strconv.ParseFloat(req.Fees, 64)

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "Something went wrong.")
		return
	}

	imageURL, err := uploadProfileImage(c, h.uploader, file, "doctors")
	if err != nil {
		log.Printf("doctor image upload failed: %v", err)
		httperr.Internal(c, "Failed to upload image.")
		return
	}

	doctor := models.Doctor{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Image:        imageURL,
		Speciality:   req.Speciality,
		Degree:       req.Degree,
		Experience:   req.Experience,
		About:        req.About,
		Fees:         fees,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		Available:    true,
		SlotsBooked:  models.SlotMap{},
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		if dbpkg.IsUniqueViolation(err) {
			httperr.BadRequest(c, "A doctor with this email already exists.")
			return
		}
		httperr.Internal(c, "Failed to create doctor.")
		return
	}

	h.doctorCache.Invalidate(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		ActorRole: "admin",
		Action:    "doctor_added",
		Entity:    "doctor",
		EntityID:  &doctor.ID,
	})

	httpresp.Created(c, gin.H{
		"message": "Doctor added",
		"doctor":  doctor,
	})
}

func (h *AdminHandler) AllDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := h.db.Order("id ASC").Find(&doctors).Error; err != nil {
		httperr.Internal(c, "Failed to list doctors.")
		return
	}

	httpresp.OK(c, gin.H{"doctors": doctors})
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "Invalid doctor id.")
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, id).Error; err != nil {
		httperr.NotFound(c, "Doctor not found.")
		return
	}

	if err := h.db.Delete(&doctor).Error; err != nil {
		httperr.Internal(c, "Failed to delete doctor.")
		return
	}

	h.doctorCache.Invalidate(c.Request.Context())

	docID := uint(id)
	h.audit.Dispatch(audit.Event{
		ActorRole: "admin",
		Action:    "doctor_deleted",
		Entity:    "doctor",
		EntityID:  &docID,
	})

	httpresp.Message(c, "Doctor deleted")
}

func (h *AdminHandler) ChangeAvailability(c *gin.Context) {
	var req ChangeAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing doctor id.")
		return
	}

	var doctor models.Doctor
	if err := h.db.First(&doctor, req.DocID).Error; err != nil {
		httperr.NotFound(c, "Doctor not found.")
		return
	}

	doctor.Available = !doctor.Available
	if err := h.db.Save(&doctor).Error; err != nil {
		httperr.Internal(c, "Failed to update availability.")
		return
	}

	h.doctorCache.Invalidate(c.Request.Context())

	httpresp.OK(c, gin.H{
		"message":   "Availability changed",
		"available": doctor.Available,
	})
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *AdminHandler) Appointments(c *gin.Context) {
	aps, err := h.listUC.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to list appointments.")
		return
	}

	httpresp.OK(c, gin.H{"appointments": aps})
}

func (h *AdminHandler) CancelAppointment(c *gin.Context) {
	var req AdminCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing appointment id.")
		return
	}

	if _, err := h.cancelUC.Execute(
		c.Request.Context(),
		req.AppointmentID,
		"admin",
		nil,
	); err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.Message(c, "Appointment cancelled")
}

func (h *AdminHandler) CompleteAppointment(c *gin.Context) {
	var req AdminCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing appointment id.")
		return
	}

	if _, err := h.completeUC.Execute(c.Request.Context(), req.AppointmentID); err != nil {
		mapAppointmentError(c, err)
		return
	}

	httpresp.Message(c, "Appointment completed")
}

// ======================================================
// DASHBOARD
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	data, err := h.dashboardUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to load dashboard.")
		return
	}

	httpresp.OK(c, gin.H{"dashboard": data})
}

// ======================================================
// REPORT (PDF)
// ======================================================

func (h *AdminHandler) AppointmentsReport(c *gin.Context) {
	aps, err := h.listUC.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "Failed to list appointments.")
		return
	}

	report, err := pdf.AppointmentsReport(aps)
	if err != nil {
		log.Printf("report generation failed: %v", err)
		httperr.Internal(c, "Failed to generate report.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="appointments.pdf"`)
	c.Data(200, "application/pdf", report)
}
