package mailer

import (
	"context"
	"log/slog"

	"aura-inn/internal/domain/notification"
)

// LogSender stands in for SMTP when no credentials are configured. Messages are logged and
// reported as not delivered.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg notification.Email) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	s.logger.InfoContext(ctx, "[MOCK EMAIL]",
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
	)
	return notification.ErrDeliveryDisabled
}
