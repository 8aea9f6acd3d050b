// Package mailer delivers rendered emails over SMTP.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/config"
	"aura-inn/internal/pkg/errs"
)

var ErrNoRecipient = errs.New("email has no recipient")

const boundary = "----=_AURA_INN_BOUNDARY"

// SMTPSender opens one connection per message, upgrades it with STARTTLS when offered and
// authenticates with the configured account.
type SMTPSender struct {
	cfg    config.MailConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewSMTPSender(cfg config.MailConfig, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg notification.Email) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))

	dialer := net.Dialer{Timeout: s.cfg.ConnectionTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errs.Wrapf(err, "dial %s", addr)
	}
	defer conn.Close()

	// smtp.NewClient reads the server greeting.
	if err := conn.SetDeadline(s.now().Add(s.cfg.GreetingTimeout)); err != nil {
		return errs.Wrap(err, "set greeting deadline")
	}
	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return errs.Wrap(err, "smtp greeting")
	}
	defer client.Close()

	if err := conn.SetDeadline(s.now().Add(s.cfg.SocketTimeout)); err != nil {
		return errs.Wrap(err, "set socket deadline")
	}

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{
			ServerName:         s.cfg.Host,
			InsecureSkipVerify: s.cfg.InsecureTLS, //nolint:gosec // opt-in for local relays
		}
		if err := client.StartTLS(tlsCfg); err != nil {
			return errs.Wrap(err, "starttls")
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return errs.Wrap(err, "smtp auth")
		}
	}

	if err := client.Mail(s.cfg.Username); err != nil {
		return errs.Wrap(err, "smtp MAIL FROM")
	}
	if err := client.Rcpt(msg.To); err != nil {
		return errs.Wrapf(err, "smtp RCPT TO %s", msg.To)
	}

	w, err := client.Data()
	if err != nil {
		return errs.Wrap(err, "smtp DATA")
	}
	if _, err := w.Write(BuildMessage(s.from(), msg)); err != nil {
		_ = w.Close()
		return errs.Wrap(err, "write message")
	}
	if err := w.Close(); err != nil {
		return errs.Wrap(err, "finish message")
	}

	if err := client.Quit(); err != nil {
		s.logger.Debug("smtp quit failed", "error", err)
	}
	return nil
}

func (s *SMTPSender) from() string {
	return fmt.Sprintf("%q <%s>", s.cfg.FromName, s.cfg.Username)
}

// BuildMessage renders a multipart/alternative message with plain text and HTML parts.
func BuildMessage(from string, msg notification.Email) []byte {
	var sb strings.Builder
	sb.WriteString("From: " + safe(from) + "\r\n")
	sb.WriteString("To: " + safe(msg.To) + "\r\n")
	if msg.ReplyTo != "" {
		sb.WriteString("Reply-To: " + safe(msg.ReplyTo) + "\r\n")
	}
	sb.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", safe(msg.Subject)) + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.Text + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTML + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// safe keeps header values on a single line.
func safe(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
