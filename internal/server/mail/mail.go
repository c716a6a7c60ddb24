// Package mail delivers one-time passcodes over SMTP. Delivery failures are
// returned to the caller as-is; there is no retry here.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

const otpSubject = "Your OTP Code"

// SMTPNotifier sends OTP mails through a single SMTP account using
// PLAIN auth (STARTTLS is negotiated by net/smtp when the server offers it).
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	return &SMTPNotifier{host: host, port: port, username: username, password: password, from: from}
}

// SendOTP mails the code to the given address. The context deadline is not
// propagated into net/smtp, which has no context support; callers bound the
// call with their own timeout.
func (n *SMTPNotifier) SendOTP(ctx context.Context, email, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\nYour OTP code is %s\r\n",
		n.from, email, otpSubject, code)

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	auth := smtp.PlainAuth("", n.username, n.password, n.host)

	if err := smtp.SendMail(addr, auth, n.from, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}

	return nil
}
