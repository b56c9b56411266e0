package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Doctor / User
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Slot registry
//
// Every mutation locks the doctor row before the check-and-set on the
// occupancy map, so two racing claims serialize at the database.
// --------------------------------------------------

func (r *AppointmentGormRepository) lockDoctor(
	tx *gorm.DB,
	doctorID uint,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doc, doctorID).Error; err != nil {
		return nil, err
	}

	if doc.SlotsBooked == nil {
		doc.SlotsBooked = models.SlotMap{}
	}
	return &doc, nil
}

func (r *AppointmentGormRepository) saveSlots(
	tx *gorm.DB,
	doc *models.Doctor,
) error {
	return tx.
		Model(&models.Doctor{}).
		Where("id = ?", doc.ID).
		Update("slots_booked", doc.SlotsBooked).Error
}

func (r *AppointmentGormRepository) ClaimSlotAndCreate(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := r.lockDoctor(tx, ap.DoctorID)
		if err != nil {
			return err
		}

		if !doc.SlotsBooked.Claim(ap.SlotDate, ap.SlotTime) {
			return httperr.ErrBusiness("slot_already_booked")
		}

		if err := r.saveSlots(tx, doc); err != nil {
			return err
		}

		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) ReleaseSlot(
	ctx context.Context,
	doctorID uint,
	slotDate string,
	slotTime string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := r.lockDoctor(tx, doctorID)
		if err != nil {
			return err
		}

		doc.SlotsBooked.Release(slotDate, slotTime)
		return r.saveSlots(tx, doc)
	})
}

func (r *AppointmentGormRepository) MoveSlot(
	ctx context.Context,
	ap *models.Appointment,
	newDate string,
	newTime string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := r.lockDoctor(tx, ap.DoctorID)
		if err != nil {
			return err
		}

		sameSlot := ap.SlotDate == newDate && ap.SlotTime == newTime
		if !sameSlot && !doc.SlotsBooked.IsFree(newDate, newTime) {
			return httperr.ErrBusiness("slot_already_booked")
		}

		doc.SlotsBooked.Release(ap.SlotDate, ap.SlotTime)
		doc.SlotsBooked.Claim(newDate, newTime)

		if err := r.saveSlots(tx, doc); err != nil {
			return err
		}

		ap.SlotDate = newDate
		ap.SlotTime = newTime
		// Preloaded associations hold a pre-lock snapshot; never write them back.
		return tx.Omit(clause.Associations).Save(ap).Error
	})
}

func (r *AppointmentGormRepository) IsSlotFree(
	ctx context.Context,
	doctorID uint,
	slotDate string,
	slotTime string,
) (bool, error) {

	doc, err := r.GetDoctorByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	return doc.SlotsBooked.IsFree(slotDate, slotTime), nil
}

// --------------------------------------------------
// Appointment records
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForUser(
	ctx context.Context,
	appointmentID uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("id = ? AND user_id = ?", appointmentID, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("User").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAllAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("User").
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

func (r *AppointmentGormRepository) CountDoctors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Count(&n).Error
	return n, err
}

func (r *AppointmentGormRepository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

func (r *AppointmentGormRepository) CountAppointments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&n).Error
	return n, err
}

// SumRevenue ignores cancelled appointments.
func (r *AppointmentGormRepository) SumRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("cancelled = false").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *AppointmentGormRepository) LatestAppointments(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
