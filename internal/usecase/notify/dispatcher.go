// Package notify renders and delivers booking notifications, either inline or through a
// background queue.
package notify

import (
	"context"
	"errors"
	"log/slog"

	"aura-inn/internal/domain/booking"
	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/clock"
	"aura-inn/internal/usecase/shared"
)

type Sender interface {
	Send(ctx context.Context, msg notification.Email) error
}

type DispatcherConfig struct {
	// OwnerFallback receives owner alerts when the settings carry no admin email.
	OwnerFallback string
	AdminURL      string
	LocationURL   string
}

// Dispatcher performs one delivery attempt and reports how it went. It never returns an error.
type Dispatcher struct {
	sender   Sender
	owners   shared.OwnerDirectory
	renderer *Renderer
	cfg      DispatcherConfig
	clock    clock.Clock
	logger   *slog.Logger
}

func NewDispatcher(
	sender Sender,
	owners shared.OwnerDirectory,
	renderer *Renderer,
	cfg DispatcherConfig,
	clk clock.Clock,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		owners:   owners,
		renderer: renderer,
		cfg:      cfg,
		clock:    clk,
		logger:   logger,
	}
}

func (d *Dispatcher) Send(ctx context.Context, kind notification.Kind, b *booking.Booking) notification.Outcome {
	now := d.clock.Now()
	logArgs := []any{"kind", kind, "booking_id", b.ID()}

	to, replyTo := d.recipients(ctx, kind, b)
	if to == "" {
		d.logger.InfoContext(ctx, "notification skipped: no recipient", logArgs...)
		return notification.Skipped(kind, now, "no recipient address")
	}

	subject, html, text, err := d.renderer.Render(kind, newEmailData(b, d.cfg.AdminURL, d.cfg.LocationURL))
	if err != nil {
		d.logger.ErrorContext(ctx, "notification render failed", append(logArgs, "error", err)...)
		return notification.Failed(kind, now, err)
	}

	err = d.sender.Send(ctx, notification.Email{
		To:      to,
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	switch {
	case errors.Is(err, notification.ErrDeliveryDisabled):
		return notification.Skipped(kind, now, err.Error())
	case err != nil:
		d.logger.WarnContext(ctx, "notification delivery failed", append(logArgs, "to", to, "error", err)...)
		return notification.Failed(kind, now, err)
	}

	d.logger.InfoContext(ctx, "notification sent", append(logArgs, "to", to)...)
	return notification.Sent(kind, now)
}

// recipients resolves the owner address from the settings, falling back to the mail account.
// Guest kinds go to the booking email.
func (d *Dispatcher) recipients(ctx context.Context, kind notification.Kind, b *booking.Booking) (to, replyTo string) {
	if kind.TargetsGuest() {
		if !b.HasEmail() {
			return "", ""
		}
		return b.Email(), ""
	}

	owner, err := d.owners.AdminEmail(ctx)
	if err != nil {
		d.logger.WarnContext(ctx, "could not read admin email, using fallback", "error", err)
	}
	if owner == "" {
		owner = d.cfg.OwnerFallback
	}
	return owner, b.Email()
}
