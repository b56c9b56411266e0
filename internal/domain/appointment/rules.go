package appointment

import (
	"time"

	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

// ===============================
// Lifecycle rules
// ===============================

func CanCancel(ap *models.Appointment) error {
	if ap.Cancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}

func CanComplete(ap *models.Appointment) error {
	if ap.Cancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	if ap.IsCompleted {
		return httperr.ErrBusiness("already_completed")
	}
	return nil
}

func CanReschedule(ap *models.Appointment) error {
	if ap.Cancelled || ap.IsCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// AssertFutureSlot rejects slots at or before now. A same-day slot is allowed
// only when its time is strictly later than the current clock.
func AssertFutureSlot(slotDateRaw, slotTime string, now time.Time) (string, error) {
	canonical, date, err := ParseSlotDate(slotDateRaw, now.Location())
	if err != nil {
		return "", httperr.ErrBusiness("invalid_slot_date")
	}

	instant, err := SlotInstant(date, slotTime)
	if err != nil {
		return "", httperr.ErrBusiness("invalid_slot_time")
	}

	if !instant.After(now) {
		return "", httperr.ErrBusiness("past_slot")
	}

	return canonical, nil
}
