package appointment

import (
	"context"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the record permanently. An active appointment still holds a
// slot, so that is released before the row goes away.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	actorRole string,
	actorID *uint,
) error {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if actorID != nil && ap.UserID != *actorID {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if !ap.Cancelled {
		if err := uc.repo.ReleaseSlot(ctx, ap.DoctorID, ap.SlotDate, ap.SlotTime); err != nil {
			return err
		}
	}

	if err := uc.repo.DeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: actorRole,
		ActorID:   actorID,
		Action:    "appointment_deleted",
		Entity:    "appointment",
		EntityID:  &appointmentID,
	})

	return nil
}
