// Package mailer sends transactional mail over SMTP with plain auth.
package mailer

import (
	"fmt"
	"net"
	"net/smtp"
)

// SMTP implements auth.Mailer. No retry and no queueing: one synchronous
// delivery attempt per call.
type SMTP struct {
	server   string // host:port
	user     string
	password string
}

func NewSMTP(server, user, password string) *SMTP {
	return &SMTP{server: server, user: user, password: password}
}

// Send delivers one HTML message to a single recipient.
func (m *SMTP) Send(to, subject, htmlBody string) error {
	if m.server == "" || m.user == "" || m.password == "" {
		return fmt.Errorf("SMTP environment variables are not set")
	}
	host, _, err := net.SplitHostPort(m.server)
	if err != nil {
		return fmt.Errorf("invalid SMTP server format (expected host:port): %w", err)
	}

	auth := smtp.PlainAuth("", m.user, m.password, host)
	msg := []byte("To: " + to + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n" +
		htmlBody + "\r\n")

	if err := smtp.SendMail(m.server, auth, m.user, []string{to}, msg); err != nil {
		return fmt.Errorf("sending mail via %s: %w", m.server, err)
	}
	return nil
}
