package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"ceylonescape/config"
	"ceylonescape/models"
)

// SMTPMailer sends booking-confirmation email over plain SMTP.
type SMTPMailer struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPMailer builds a mailer from the loaded configuration.
func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host: config.AppConfig.EmailHost,
		Port: config.AppConfig.EmailPort,
		User: config.AppConfig.EmailUser,
		Pass: config.AppConfig.EmailPass,
		From: config.AppConfig.EmailFrom,
	}
}

// SendBookingConfirmation delivers the confirmation message.
func (m *SMTPMailer) SendBookingConfirmation(_ context.Context, email models.BookingConfirmationEmail) error {
	subject := "Booking Confirmed!"
	body := fmt.Sprintf("Your booking (ID: %s) is confirmed. Session ID: %s. Thank you!",
		email.BookingID, email.SessionID)

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + email.To,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send confirmation email for booking %s: %w", email.BookingID, err)
	}
	return nil
}
