package appointment

import (
	"context"

	domain "github.com/docsmart-health/docsmart-api/internal/domain/appointment"
	"github.com/docsmart-health/docsmart-api/internal/models"
)

type DashboardData struct {
	Doctors      int64                `json:"doctors"`
	Patients     int64                `json:"patients"`
	Appointments int64                `json:"appointments"`
	Revenue      float64              `json:"revenue"`
	Latest       []models.Appointment `json:"latest_appointments"`
}

type Dashboard struct {
	repo domain.Repository
}

func NewDashboard(repo domain.Repository) *Dashboard {
	return &Dashboard{repo: repo}
}

func (uc *Dashboard) Execute(ctx context.Context) (*DashboardData, error) {
	doctors, err := uc.repo.CountDoctors(ctx)
	if err != nil {
		return nil, err
	}

	patients, err := uc.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.CountAppointments(ctx)
	if err != nil {
		return nil, err
	}

	// Cancelled appointments never count toward revenue.
	revenue, err := uc.repo.SumRevenue(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := uc.repo.LatestAppointments(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &DashboardData{
		Doctors:      doctors,
		Patients:     patients,
		Appointments: appointments,
		Revenue:      revenue,
		Latest:       latest,
	}, nil
}
