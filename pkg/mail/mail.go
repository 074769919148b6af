// Package mail sends plain-text mail through a single SMTP relay.
//
// It exists for the log email sink: the station has no other outbound
// surface, so anything beyond "deliver this text to the operator" is out
// of scope here.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// SMTP delivers mail via one relay with optional PLAIN auth.
type SMTP struct {
	Addr     string // host:port
	User     string
	Password string
}

func NewSMTP(addr, user, password string) *SMTP {
	return &SMTP{Addr: addr, User: user, Password: password}
}

// Send delivers a single message. The From address is the authenticated
// user (the station's own mailbox).
func (s *SMTP) Send(ctx context.Context, to, subject, body string) error {
	addr := strings.TrimSpace(s.Addr)
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("smtp address %q: %w", addr, err)
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("smtp: recipient is empty")
	}

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Password, host)
	}

	msg := buildMessage(s.User, to, subject, body)

	// net/smtp has no context support; run the blocking send in a goroutine
	// and abandon it if the caller gives up.
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.User, []string{to}, msg)
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + sanitizeHeader(subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// sanitizeHeader strips CR/LF so log content can never inject headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
