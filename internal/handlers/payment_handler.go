package handlers

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/httpresp"
	"github.com/docsmart-health/docsmart-api/internal/middleware"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db       *gorm.DB
	razorpay *payments.RazorpayGateway
	stripe   *payments.StripeGateway
	audit    *audit.Dispatcher
}

func NewPaymentHandler(
	db *gorm.DB,
	razorpay *payments.RazorpayGateway,
	stripe *payments.StripeGateway,
	auditDispatcher *audit.Dispatcher,
) *PaymentHandler {
	return &PaymentHandler{
		db:       db,
		razorpay: razorpay,
		stripe:   stripe,
		audit:    auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PaymentRequest struct {
	AppointmentID uint `json:"appointmentId" binding:"required"`
}

type VerifyRazorpayRequest struct {
	OrderID string `json:"razorpay_order_id" binding:"required"`
}

type VerifyStripeRequest struct {
	AppointmentID uint   `json:"appointmentId" binding:"required"`
	Success       string `json:"success" binding:"required"`
}

// payableAppointment loads the caller's appointment and rejects anything that
// is cancelled or already paid.
func (h *PaymentHandler) payableAppointment(c *gin.Context, appointmentID uint) (*models.Appointment, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {

		httperr.NotFound(c, "Appointment not found.")
		return nil, false
	}

	if ap.Cancelled {
		httperr.BadRequest(c, "Appointment is cancelled.")
		return nil, false
	}
	if ap.Payment {
		httperr.BadRequest(c, "Appointment is already paid.")
		return nil, false
	}

	return &ap, true
}

func (h *PaymentHandler) markPaid(c *gin.Context, ap *models.Appointment, provider string) bool {
	ap.Payment = true
	if err := h.db.Model(ap).Update("payment", true).Error; err != nil {
		httperr.Internal(c, "Failed to record payment.")
		return false
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		ActorRole: middleware.RoleUser,
		ActorID:   &userID,
		Action:    "payment_recorded",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]string{"provider": provider},
	})

	return true
}

// ======================================================
// RAZORPAY
// ======================================================

func (h *PaymentHandler) PaymentRazorpay(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing appointment id.")
		return
	}

	ap, ok := h.payableAppointment(c, req.AppointmentID)
	if !ok {
		return
	}

	order, err := h.razorpay.CreateOrder(ap.ID, ap.Amount)
	if err != nil {
		log.Printf("razorpay order failed: %v", err)
		httperr.Internal(c, "Failed to create payment order.")
		return
	}

	httpresp.OK(c, gin.H{"order": order})
}

func (h *PaymentHandler) VerifyRazorpay(c *gin.Context) {
	var req VerifyRazorpayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing order id.")
		return
	}

	appointmentID, paid, err := h.razorpay.VerifyOrder(req.OrderID)
	if err != nil {
		log.Printf("razorpay verify failed: %v", err)
		httperr.Internal(c, "Failed to verify payment.")
		return
	}

	if !paid {
		httperr.BadRequest(c, "Payment failed.")
		return
	}

	ap, ok := h.payableAppointment(c, appointmentID)
	if !ok {
		return
	}

	if !h.markPaid(c, ap, "razorpay") {
		return
	}

	httpresp.Message(c, "Payment successful")
}

// ======================================================
// STRIPE
// ======================================================

func (h *PaymentHandler) PaymentStripe(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing appointment id.")
		return
	}

	ap, ok := h.payableAppointment(c, req.AppointmentID)
	if !ok {
		return
	}

	url, err := h.stripe.CreateCheckoutSession(ap.ID, ap.Amount)
	if err != nil {
		log.Printf("stripe session failed: %v", err)
		httperr.Internal(c, "Failed to create payment session.")
		return
	}

	httpresp.OK(c, gin.H{"session_url": url})
}

func (h *PaymentHandler) VerifyStripe(c *gin.Context) {
	var req VerifyStripeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Missing verification details.")
		return
	}

	if req.Success != "true" {
		httperr.BadRequest(c, "Payment failed.")
		return
	}

	ap, ok := h.payableAppointment(c, req.AppointmentID)
	if !ok {
		return
	}

	if !h.markPaid(c, ap, "stripe") {
		return
	}

	httpresp.Message(c, "Payment successful")
}
