package mailer

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gomail/gomail"

	"github.com/docsmart-health/docsmart-api/internal/config"
)

// Mailer sends transactional mail. A nil *Mailer is valid and drops every
// message, so the API works without SMTP configured.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
		return nil
	}

	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPUser,
	}
}

func (m *Mailer) send(to, subject, body string) {
	if m == nil || to == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("failed to send mail to %s: %v", to, err)
	}
}

// SendBookingConfirmation is fire-and-forget; callers run it in a goroutine.
func (m *Mailer) SendBookingConfirmation(to, doctorName, slotDate, slotTime string) {
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s is confirmed.\n\nThank you for using DocSmart.",
		doctorName,
		strings.ReplaceAll(slotDate, "_", "/"),
		slotTime,
	)
	m.send(to, "Appointment confirmed", body)
}

func (m *Mailer) SendCancellation(to, doctorName, slotDate, slotTime string) {
	body := fmt.Sprintf(
		"Your appointment with %s on %s at %s has been cancelled.",
		doctorName,
		strings.ReplaceAll(slotDate, "_", "/"),
		slotTime,
	)
	m.send(to, "Appointment cancelled", body)
}
