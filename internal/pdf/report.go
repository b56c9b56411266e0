package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/docsmart-health/docsmart-api/internal/models"
)

// AppointmentsReport renders the admin export: one row per appointment plus a
// revenue total over non-cancelled bookings.
func AppointmentsReport(appointments []models.Appointment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(9, 9, 73)
	pdf.CellFormat(0, 10, "DocSmart - Appointments Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total appointments: %d", len(appointments)), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	headers := []string{"ID", "Patient", "Doctor", "Date", "Time", "Amount", "Status"}
	widths := []float64{12, 40, 40, 26, 16, 22, 34}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)

	var revenue float64
	for _, ap := range appointments {
		status := "Scheduled"
		switch {
		case ap.Cancelled:
			status = "Cancelled"
		case ap.IsCompleted:
			status = "Completed"
		}
		if !ap.Cancelled {
			revenue += ap.Amount
		}

		cells := []string{
			fmt.Sprintf("%d", ap.ID),
			truncate(ap.User.Name, 24),
			truncate(ap.Doctor.Name, 24),
			strings.ReplaceAll(ap.SlotDate, "_", "/"),
			ap.SlotTime,
			fmt.Sprintf("%.2f", ap.Amount),
			status,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Revenue (excluding cancelled): %.2f", revenue), "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 8, "This is a computer generated report", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "."
}
