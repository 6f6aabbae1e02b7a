// Package email delivers sign-in links.
package email

import (
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

type Sender interface {
	Send(to, subject, html string) error
}

// StdoutSender logs instead of sending. Development fallback.
type StdoutSender struct{}

func (StdoutSender) Send(to, subject, html string) error {
	log.Printf("EMAIL to=%s subject=%s\n%s", to, subject, html)
	return nil
}

// SMTPSender sends over plain SMTP (MailHog locally, a relay in prod).
type SMTPSender struct {
	Addr string
	From string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	if addr == "" {
		addr = "localhost:1025"
	}
	if from == "" {
		from = "no-reply@dressage-journey.local"
	}
	return &SMTPSender{Addr: addr, From: from}
}

func (s *SMTPSender) Send(to, subject, html string) error {
	if to == "" {
		return errors.New("email: recipient required")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	return smtp.SendMail(s.Addr, nil, s.From, []string{to}, []byte(msg.String()))
}
