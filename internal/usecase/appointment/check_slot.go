package appointment

import (
	"context"

	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/httperr"
	"github.com/docsmart-health/docsmart-api/internal/timezone"
)

type CheckSlot struct {
	repo domain.Repository
}

func NewCheckSlot(repo domain.Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

// Execute answers the availability probe. A malformed or past slot is simply
// not available; only a missing doctor is an error.
func (uc *CheckSlot) Execute(
	ctx context.Context,
	doctorID uint,
	slotDate string,
	slotTime string,
) (bool, error) {

	if _, err := uc.repo.GetDoctorByID(ctx, doctorID); err != nil {
		return false, httperr.ErrBusiness("doctor_not_found")
	}

	canonical, err := domain.AssertFutureSlot(slotDate, slotTime, timezone.Now())
	if err != nil {
		return false, nil
	}

	return uc.repo.IsSlotFree(ctx, doctorID, canonical, slotTime)
}
