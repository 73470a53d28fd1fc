package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer delivers the email-verification link issued at account creation.
type Mailer interface {
	SendVerification(to, token string) error
}

// SMTPMailer sends through a plain SMTP relay.
type SMTPMailer struct {
	Addr    string // host:port
	From    string
	BaseURL string
}

func (m *SMTPMailer) SendVerification(to, token string) error {
	link := verificationLink(m.BaseURL, token)
	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + to,
		"Subject: Verify your email",
		"",
		"Click the link to verify your email: " + link,
		"",
	}, "\r\n")

	if err := smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

// LogMailer stands in when no SMTP relay is configured; the link still ends
// up somewhere a developer can pick it up.
type LogMailer struct {
	BaseURL string
}

func (m *LogMailer) SendVerification(to, token string) error {
	log.Printf("verification mail for %s: %s", to, verificationLink(m.BaseURL, token))
	return nil
}

func verificationLink(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/api/users/verify-email?token=" + token
}

// New picks the SMTP mailer when an address is configured, the log mailer
// otherwise.
func New(addr, from, baseURL string) Mailer {
	if addr == "" {
		return &LogMailer{BaseURL: baseURL}
	}
	return &SMTPMailer{Addr: addr, From: from, BaseURL: baseURL}
}
