package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/perfectpest/pestcontrol-platform/internal/settings"
	"github.com/perfectpest/pestcontrol-platform/pkg/logging"
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// SMTPSender sends emails through the SMTP server described by a stored
// settings record. Construction is pure; no network I/O happens until Send.
type SMTPSender struct {
	cfg    settings.SMTPSettings
	logger *logging.Logger
}

// NewSMTPSender builds a sender from the stored transport configuration.
// One sender is constructed per notification attempt; there is no pooling.
func NewSMTPSender(cfg settings.SMTPSettings, logger *logging.Logger) *SMTPSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

// Send delivers one message. The secure flag selects implicit TLS (SMTPS,
// typically port 465); otherwise delivery goes through smtp.SendMail, which
// upgrades with STARTTLS when the server offers it.
func (s *SMTPSender) Send(ctx context.Context, msg EmailMessage) error {
	raw := s.buildMessage(msg)

	var err error
	if s.cfg.Secure {
		err = s.sendImplicitTLS(msg.To, raw)
	} else {
		err = s.sendSTARTTLS(msg.To, raw)
	}
	if err != nil {
		s.logger.Error("failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
		return fmt.Errorf("notify: send email: %w", err)
	}

	s.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (s *SMTPSender) auth() smtp.Auth {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return nil
	}
	return smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
}

// sendSTARTTLS connects plain and lets the library upgrade the session.
func (s *SMTPSender) sendSTARTTLS(to string, raw []byte) error {
	return smtp.SendMail(s.cfg.Addr(), s.auth(), s.cfg.FromEmail, []string{to}, raw)
}

// sendImplicitTLS dials TLS directly before speaking SMTP.
func (s *SMTPSender) sendImplicitTLS(to string, raw []byte) error {
	conn, err := tls.Dial("tcp", s.cfg.Addr(), &tls.Config{ServerName: s.cfg.Host})
	if err != nil {
		return fmt.Errorf("tls dial: %w", err)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Quit()

	if auth := s.auth(); auth != nil {
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}
	if err := c.Mail(s.cfg.FromEmail); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("rcpt to %s: %w", to, err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close data: %w", err)
	}
	return nil
}

// buildMessage constructs the raw multipart message with headers.
func (s *SMTPSender) buildMessage(msg EmailMessage) []byte {
	var buf bytes.Buffer

	from := s.cfg.FromEmail
	if s.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)
	}

	buf.WriteString(fmt.Sprintf("From: %s\r\n", from))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	boundary := "=====pestcontrol-mail====="
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	buf.WriteString("\r\n")

	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Text)
	buf.WriteString("\r\n")

	if msg.HTML != "" {
		buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
		buf.WriteString("\r\n")
		buf.WriteString(msg.HTML)
		buf.WriteString("\r\n")
	}

	buf.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return buf.Bytes()
}

// StubSender is a no-op sender for testing or when email is disabled.
type StubSender struct {
	logger *logging.Logger
}

// NewStubSender creates a stub sender that logs but doesn't send.
func NewStubSender(logger *logging.Logger) *StubSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email", "to", msg.To, "subject", msg.Subject)
	return nil
}

var _ EmailSender = (*SMTPSender)(nil)
var _ EmailSender = (*StubSender)(nil)
