package appointment

import (
	"context"

	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// ForUser returns the caller's appointments, newest first. Substring filtering
// by name/status stays in the clients.
func (uc *ListAppointments) ForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForUser(ctx, userID)
}

// All returns every appointment for the admin console.
func (uc *ListAppointments) All(
	ctx context.Context,
) ([]models.Appointment, error) {
	return uc.repo.ListAllAppointments(ctx)
}
