package appointment

import (
	"context"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/timezone"
)

type EditAppointmentInput struct {
	UserID        uint
	AppointmentID uint

	NewSlotDate string
	NewSlotTime string
}

type EditAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *EditAppointment {
	return &EditAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *EditAppointment) Execute(
	ctx context.Context,
	in EditAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.CanReschedule(ap); err != nil {
		return nil, err
	}

	newDate, err := domain.AssertFutureSlot(in.NewSlotDate, in.NewSlotTime, timezone.Now())
	if err != nil {
		return nil, err
	}

	// Release old, claim new and persist in one transaction, doctor row locked.
	if err := uc.repo.MoveSlot(ctx, ap, newDate, in.NewSlotTime); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "user",
		ActorID:   &in.UserID,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
