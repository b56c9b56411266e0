package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
)

// mapAppointmentError translates business codes from the use cases into the
// response envelope. Anything unmapped is an unexpected failure.
func mapAppointmentError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "doctor_not_found"):
		httperr.NotFound(c, "Doctor not found.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "Appointment not found.")
	case httperr.IsBusiness(err, "doctor_unavailable"):
		httperr.BadRequest(c, "Doctor is not available.")
	case httperr.IsBusiness(err, "invalid_slot_date"):
		httperr.BadRequest(c, "Invalid slot date.")
	case httperr.IsBusiness(err, "invalid_slot_time"):
		httperr.BadRequest(c, "Invalid slot time.")
	case httperr.IsBusiness(err, "past_slot"):
		httperr.BadRequest(c, "Cannot book an appointment in the past.")
	case httperr.IsBusiness(err, "slot_already_booked"):
		httperr.Conflict(c, "Slot already booked")
	case httperr.IsBusiness(err, "already_cancelled"):
		httperr.BadRequest(c, "Appointment is already cancelled.")
	case httperr.IsBusiness(err, "already_completed"):
		httperr.BadRequest(c, "Appointment is already completed.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "Appointment cannot be modified.")
	default:
		log.Printf("appointment error: %v", err)
		httperr.Internal(c, "Something went wrong.")
	}
}
