package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	doctors      map[uint]*models.Doctor
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors:      map[uint]*models.Doctor{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

func (f *fakeRepo) addDoctor(id uint, fees float64, available bool) *models.Doctor {
	doc := &models.Doctor{
		ID:          id,
		Name:        "Dr Test",
		Fees:        fees,
		Available:   available,
		SlotsBooked: models.SlotMap{},
	}
	f.doctors[id] = doc
	return doc
}

func (f *fakeRepo) GetDoctorByID(_ context.Context, id uint) (*models.Doctor, error) {
	doc, ok := f.doctors[id]
	if !ok {
		return nil, errors.New("doctor not found")
	}
	return doc, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (f *fakeRepo) ClaimSlotAndCreate(_ context.Context, ap *models.Appointment) error {
	doc, ok := f.doctors[ap.DoctorID]
	if !ok {
		return errors.New("doctor not found")
	}
	if !doc.SlotsBooked.Claim(ap.SlotDate, ap.SlotTime) {
		return httperr.ErrBusiness("slot_already_booked")
	}

	ap.ID = f.nextID
	f.nextID++
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) ReleaseSlot(_ context.Context, doctorID uint, slotDate, slotTime string) error {
	doc, ok := f.doctors[doctorID]
	if !ok {
		return errors.New("doctor not found")
	}
	doc.SlotsBooked.Release(slotDate, slotTime)
	return nil
}

func (f *fakeRepo) MoveSlot(_ context.Context, ap *models.Appointment, newDate, newTime string) error {
	doc, ok := f.doctors[ap.DoctorID]
	if !ok {
		return errors.New("doctor not found")
	}

	if newDate == ap.SlotDate && newTime == ap.SlotTime {
		return nil
	}
	if !doc.SlotsBooked.IsFree(newDate, newTime) {
		return httperr.ErrBusiness("slot_already_booked")
	}

	doc.SlotsBooked.Release(ap.SlotDate, ap.SlotTime)
	doc.SlotsBooked.Claim(newDate, newTime)

	ap.SlotDate = newDate
	ap.SlotTime = newTime
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) IsSlotFree(_ context.Context, doctorID uint, slotDate, slotTime string) (bool, error) {
	doc, ok := f.doctors[doctorID]
	if !ok {
		return false, errors.New("doctor not found")
	}
	return doc.SlotsBooked.IsFree(slotDate, slotTime), nil
}

func (f *fakeRepo) GetAppointmentForUser(_ context.Context, appointmentID, userID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.UserID != userID {
		return nil, errors.New("appointment not found")
	}
	copied := *ap
	return &copied, nil
}

func (f *fakeRepo) GetAppointmentByID(_ context.Context, appointmentID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok {
		return nil, errors.New("appointment not found")
	}
	copied := *ap
	return &copied, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("appointment not found")
	}
	stored := *ap
	f.appointments[ap.ID] = &stored
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := f.appointments[ap.ID]; !ok {
		return errors.New("appointment not found")
	}
	delete(f.appointments, ap.ID)
	return nil
}

func (f *fakeRepo) ListAppointmentsForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAllAppointments(_ context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

func (f *fakeRepo) CountDoctors(_ context.Context) (int64, error) {
	return int64(len(f.doctors)), nil
}

func (f *fakeRepo) CountUsers(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CountAppointments(_ context.Context) (int64, error) {
	return int64(len(f.appointments)), nil
}

func (f *fakeRepo) SumRevenue(_ context.Context) (float64, error) {
	var sum float64
	for _, ap := range f.appointments {
		if !ap.Cancelled {
			sum += ap.Amount
		}
	}
	return sum, nil
}

func (f *fakeRepo) LatestAppointments(_ context.Context, limit int) ([]models.Appointment, error) {
	out, _ := f.ListAllAppointments(context.Background())
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Dates far in the future so the clock check never interferes.
const (
	futureDate = "05_09_2099"
	futureTime = "10:00"
)

// ======================================================
// BOOK
// ======================================================

func TestBookAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		uc := NewBookAppointment(repo, nil)
		ap, err := uc.Execute(ctx, BookAppointmentInput{
			UserID:   7,
			DoctorID: 1,
			SlotDate: "5_9_2099",
			SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		if ap.SlotDate != futureDate {
			t.Errorf("slot date = %q, want canonical %q", ap.SlotDate, futureDate)
		}
		if ap.Amount != 150 {
			t.Errorf("amount = %v, want doctor fees 150", ap.Amount)
		}
		if repo.doctors[1].SlotsBooked.IsFree(futureDate, futureTime) {
			t.Error("booked slot still reported free")
		}
	})

	t.Run("doctor not found", func(t *testing.T) {
		uc := NewBookAppointment(newFakeRepo(), nil)
		_, err := uc.Execute(ctx, BookAppointmentInput{
			UserID: 7, DoctorID: 99, SlotDate: futureDate, SlotTime: futureTime,
		})
		if !httperr.IsBusiness(err, "doctor_not_found") {
			t.Errorf("err = %v, want doctor_not_found", err)
		}
	})

	t.Run("doctor unavailable", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, false)

		uc := NewBookAppointment(repo, nil)
		_, err := uc.Execute(ctx, BookAppointmentInput{
			UserID: 7, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if !httperr.IsBusiness(err, "doctor_unavailable") {
			t.Errorf("err = %v, want doctor_unavailable", err)
		}
	})

	t.Run("past slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		uc := NewBookAppointment(repo, nil)
		_, err := uc.Execute(ctx, BookAppointmentInput{
			UserID: 7, DoctorID: 1, SlotDate: "05_09_2020", SlotTime: futureTime,
		})
		if !httperr.IsBusiness(err, "past_slot") {
			t.Errorf("err = %v, want past_slot", err)
		}
	})

	t.Run("double booking rejected", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		uc := NewBookAppointment(repo, nil)
		in := BookAppointmentInput{UserID: 7, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime}

		if _, err := uc.Execute(ctx, in); err != nil {
			t.Fatalf("first booking failed: %v", err)
		}

		in.UserID = 8
		_, err := uc.Execute(ctx, in)
		if !httperr.IsBusiness(err, "slot_already_booked") {
			t.Errorf("err = %v, want slot_already_booked", err)
		}
	})
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelAppointment(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)

	book := func(t *testing.T, repo *fakeRepo) *models.Appointment {
		t.Helper()
		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		return ap
	}

	t.Run("user cancel frees the slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)
		ap := book(t, repo)

		got, err := NewCancelAppointment(repo, nil).Execute(ctx, ap.ID, "user", &userID)
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if !got.Cancelled {
			t.Error("appointment not marked cancelled")
		}
		if !repo.doctors[1].SlotsBooked.IsFree(futureDate, futureTime) {
			t.Error("cancelled slot still occupied")
		}

		// The freed slot can be booked again by someone else.
		other := uint(8)
		if _, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: other, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		}); err != nil {
			t.Errorf("rebooking a freed slot failed: %v", err)
		}
	})

	t.Run("cancel twice", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)
		ap := book(t, repo)

		uc := NewCancelAppointment(repo, nil)
		if _, err := uc.Execute(ctx, ap.ID, "user", &userID); err != nil {
			t.Fatalf("first cancel failed: %v", err)
		}
		_, err := uc.Execute(ctx, ap.ID, "user", &userID)
		if !httperr.IsBusiness(err, "already_cancelled") {
			t.Errorf("err = %v, want already_cancelled", err)
		}
	})

	t.Run("user cannot cancel another user's appointment", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)
		ap := book(t, repo)

		stranger := uint(99)
		_, err := NewCancelAppointment(repo, nil).Execute(ctx, ap.ID, "user", &stranger)
		if !httperr.IsBusiness(err, "appointment_not_found") {
			t.Errorf("err = %v, want appointment_not_found", err)
		}
	})

	t.Run("admin cancels any appointment", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)
		ap := book(t, repo)

		got, err := NewCancelAppointment(repo, nil).Execute(ctx, ap.ID, "admin", nil)
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}
		if !got.Cancelled {
			t.Error("appointment not marked cancelled")
		}
	})
}

// ======================================================
// EDIT
// ======================================================

func TestEditAppointment(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)

	t.Run("move releases the old slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		moved, err := NewEditAppointment(repo, nil).Execute(ctx, EditAppointmentInput{
			UserID:        userID,
			AppointmentID: ap.ID,
			NewSlotDate:   "06_09_2099",
			NewSlotTime:   "11:00",
		})
		if err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		if moved.SlotDate != "06_09_2099" || moved.SlotTime != "11:00" {
			t.Errorf("appointment at %s %s, want 06_09_2099 11:00", moved.SlotDate, moved.SlotTime)
		}

		slots := repo.doctors[1].SlotsBooked
		if !slots.IsFree(futureDate, futureTime) {
			t.Error("old slot still occupied after move")
		}
		if slots.IsFree("06_09_2099", "11:00") {
			t.Error("new slot not occupied after move")
		}
	})

	t.Run("move into an occupied slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		bookUC := NewBookAppointment(repo, nil)
		first, err := bookUC.Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := bookUC.Execute(ctx, BookAppointmentInput{
			UserID: 8, DoctorID: 1, SlotDate: "06_09_2099", SlotTime: "11:00",
		}); err != nil {
			t.Fatalf("second booking failed: %v", err)
		}

		_, err = NewEditAppointment(repo, nil).Execute(ctx, EditAppointmentInput{
			UserID:        userID,
			AppointmentID: first.ID,
			NewSlotDate:   "06_09_2099",
			NewSlotTime:   "11:00",
		})
		if !httperr.IsBusiness(err, "slot_already_booked") {
			t.Errorf("err = %v, want slot_already_booked", err)
		}
	})

	t.Run("cancelled appointment cannot move", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}
		if _, err := NewCancelAppointment(repo, nil).Execute(ctx, ap.ID, "user", &userID); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}

		_, err = NewEditAppointment(repo, nil).Execute(ctx, EditAppointmentInput{
			UserID:        userID,
			AppointmentID: ap.ID,
			NewSlotDate:   "06_09_2099",
			NewSlotTime:   "11:00",
		})
		if !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("err = %v, want invalid_state", err)
		}
	})

	t.Run("past target slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		_, err = NewEditAppointment(repo, nil).Execute(ctx, EditAppointmentInput{
			UserID:        userID,
			AppointmentID: ap.ID,
			NewSlotDate:   "05_09_2020",
			NewSlotTime:   "11:00",
		})
		if !httperr.IsBusiness(err, "past_slot") {
			t.Errorf("err = %v, want past_slot", err)
		}
	})
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)

	t.Run("delete releases an active slot", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		if err := NewDeleteAppointment(repo, nil).Execute(ctx, ap.ID, "user", &userID); err != nil {
			t.Fatalf("Execute returned error: %v", err)
		}

		if _, ok := repo.appointments[ap.ID]; ok {
			t.Error("appointment record still present")
		}
		if !repo.doctors[1].SlotsBooked.IsFree(futureDate, futureTime) {
			t.Error("slot still occupied after delete")
		}
	})

	t.Run("ownership enforced", func(t *testing.T) {
		repo := newFakeRepo()
		repo.addDoctor(1, 150, true)

		ap, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
			UserID: userID, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
		})
		if err != nil {
			t.Fatalf("booking failed: %v", err)
		}

		stranger := uint(99)
		err = NewDeleteAppointment(repo, nil).Execute(ctx, ap.ID, "user", &stranger)
		if !httperr.IsBusiness(err, "appointment_not_found") {
			t.Errorf("err = %v, want appointment_not_found", err)
		}
	})
}

// ======================================================
// CHECK SLOT
// ======================================================

func TestCheckSlot(t *testing.T) {
	ctx := context.Background()

	repo := newFakeRepo()
	repo.addDoctor(1, 150, true)
	uc := NewCheckSlot(repo)

	free, err := uc.Execute(ctx, 1, futureDate, futureTime)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !free {
		t.Error("untouched slot should be available")
	}

	if _, err := NewBookAppointment(repo, nil).Execute(ctx, BookAppointmentInput{
		UserID: 7, DoctorID: 1, SlotDate: futureDate, SlotTime: futureTime,
	}); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	free, err = uc.Execute(ctx, 1, futureDate, futureTime)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if free {
		t.Error("booked slot should not be available")
	}

	// Malformed and past slots are just unavailable, not errors.
	for _, probe := range []struct{ date, slot string }{
		{"not_a_date", "10:00"},
		{futureDate, "bad"},
		{"05_09_2020", "10:00"},
	} {
		free, err := uc.Execute(ctx, 1, probe.date, probe.slot)
		if err != nil {
			t.Errorf("Execute(%q, %q) returned error: %v", probe.date, probe.slot, err)
		}
		if free {
			t.Errorf("Execute(%q, %q) = true, want false", probe.date, probe.slot)
		}
	}

	if _, err := uc.Execute(ctx, 42, futureDate, futureTime); !httperr.IsBusiness(err, "doctor_not_found") {
		t.Errorf("err = %v, want doctor_not_found", err)
	}
}
