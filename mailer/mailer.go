// Package mailer sends transactional email over plain SMTP.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"os"
)

// Mailer is nil-safe: a nil receiver reports itself as unconfigured
// instead of panicking, so email stays best-effort everywhere.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var ErrNotConfigured = errors.New("mailer not configured")

// NewFromEnv returns nil when SMTP_HOST is unset.
func NewFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	if m == nil {
		return ErrNotConfigured
	}
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.from, to, subject, body,
	))
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, msg)
}

func (m *Mailer) SendOTP(to, code, purpose string) error {
	subject := "Your verification code"
	if purpose == "reset_password" {
		subject = "Your password reset code"
	}
	body := fmt.Sprintf("Your one-time code is %s. It expires in 15 minutes.", code)
	return m.Send(to, subject, body)
}

func (m *Mailer) SendOrderConfirmation(to, orderNumber string, total float64) error {
	subject := fmt.Sprintf("Order %s confirmed", orderNumber)
	body := fmt.Sprintf(
		"Thanks for your purchase!\n\nOrder number: %s\nTotal: %.2f\n\nWe will let you know when it ships.",
		orderNumber, total,
	)
	return m.Send(to, subject, body)
}
