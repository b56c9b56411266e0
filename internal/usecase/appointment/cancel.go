package appointment

import (
	"context"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancels on behalf of a user (actorID set, ownership enforced) or an
// admin (actorID nil, any appointment).
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorRole string,
	actorID *uint,
) (*models.Appointment, error) {

	var ap *models.Appointment
	var err error

	if actorID != nil {
		ap, err = uc.repo.GetAppointmentForUser(ctx, appointmentID, *actorID)
	} else {
		ap, err = uc.repo.GetAppointmentByID(ctx, appointmentID)
	}
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanCancel(ap); err != nil {
		return nil, err
	}

	// Free the slot first so the record never points at occupancy it lost.
	if err := uc.repo.ReleaseSlot(ctx, ap.DoctorID, ap.SlotDate, ap.SlotTime); err != nil {
		return nil, err
	}

	ap.Cancelled = true
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: actorRole,
		ActorID:   actorID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
