package appointment

import (
	"context"

	"github.com/docsmart-health/docsmart-api/internal/audit"
	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
	"github.com/docsmart-health/docsmart-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	UserID   uint
	DoctorID uint

	SlotDate string
	SlotTime string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	doc, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.ErrBusiness("doctor_not_found")
	}

	if !doc.Available {
		return nil, httperr.ErrBusiness("doctor_unavailable")
	}

	// Canonical slot key + future-only check, clinic clock.
	slotDate, err := domain.AssertFutureSlot(in.SlotDate, in.SlotTime, timezone.Now())
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:   in.UserID,
		DoctorID: in.DoctorID,
		SlotDate: slotDate,
		SlotTime: in.SlotTime,
		Amount:   doc.Fees,
	}

	// Claim and create inside one transaction; the repo returns
	// slot_already_booked when the check-and-set loses the race.
	if err := uc.repo.ClaimSlotAndCreate(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorRole: "user",
		ActorID:   &in.UserID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	ap.Doctor = *doc
	return ap, nil
}
