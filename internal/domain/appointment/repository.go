package appointment

import (
	"context"

	"github.com/docsmart-health/docsmart-api/internal/models"
)

type Repository interface {
	// -------- Doctor --------
	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Slot registry (atomic at the storage boundary) --------

	// ClaimSlotAndCreate locks the doctor row, verifies the slot is free and,
	// still inside the same transaction, claims it and inserts the appointment.
	ClaimSlotAndCreate(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// ReleaseSlot locks the doctor row and removes the occupancy entry.
	ReleaseSlot(
		ctx context.Context,
		doctorID uint,
		slotDate string,
		slotTime string,
	) error

	// MoveSlot locks the doctor row, verifies the new slot is free, releases
	// the old one, claims the new one and updates the appointment record.
	MoveSlot(
		ctx context.Context,
		ap *models.Appointment,
		newDate string,
		newTime string,
	) error

	IsSlotFree(
		ctx context.Context,
		doctorID uint,
		slotDate string,
		slotTime string,
	) (bool, error)

	// -------- Appointment records --------
	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	GetAppointmentByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAllAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Dashboard --------
	CountDoctors(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	SumRevenue(ctx context.Context) (float64, error)
	LatestAppointments(ctx context.Context, limit int) ([]models.Appointment, error)
}
