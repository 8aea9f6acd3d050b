//go:build unit

package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"testing"
	"time"

	"aura-inn/internal/domain/notification"
	"aura-inn/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	raw := string(BuildMessage(`"The Aura Inn" <inn@example.com>`, notification.Email{
		To:      "guest@example.com",
		ReplyTo: "owner@example.com\r\nBcc: evil@example.com",
		Subject: "Booking Confirmed",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	}))

	assert.True(t, strings.HasPrefix(raw, "From: \"The Aura Inn\" <inn@example.com>\r\nTo: guest@example.com\r\n"))
	assert.Contains(t, raw, "Reply-To: owner@example.com Bcc: evil@example.com\r\n")
	assert.NotContains(t, raw, "\r\nBcc:")
	assert.Contains(t, raw, "Subject: Booking Confirmed\r\n")
	assert.Contains(t, raw, "Content-Type: text/html; charset=utf-8\r\n\r\n<p>hi</p>\r\n")
	assert.True(t, strings.HasSuffix(raw, "--"+boundary+"--\r\n"))
}

func TestBuildMessage_OmitsEmptyReplyTo(t *testing.T) {
	raw := string(BuildMessage("inn@example.com", notification.Email{To: "guest@example.com", Subject: "x"}))

	assert.NotContains(t, raw, "Reply-To:")
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := sender.Send(context.Background(), notification.Email{To: "guest@example.com", Subject: "Hello"})

	require.ErrorIs(t, err, notification.ErrDeliveryDisabled)
	assert.Contains(t, buf.String(), "[MOCK EMAIL]")
	assert.Contains(t, buf.String(), "to=guest@example.com")

	assert.ErrorIs(t, sender.Send(context.Background(), notification.Email{}), ErrNoRecipient)
}

func TestSMTPSender_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	sender := NewSMTPSender(config.MailConfig{
		Host:              "127.0.0.1",
		Port:              port,
		Username:          "inn@example.com",
		ConnectionTimeout: time.Second,
		GreetingTimeout:   time.Second,
		SocketTimeout:     time.Second,
	}, slog.New(slog.DiscardHandler))

	err = sender.Send(context.Background(), notification.Email{To: "guest@example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial 127.0.0.1:"+strconv.Itoa(port))
}

func TestSMTPSender_RequiresRecipient(t *testing.T) {
	sender := NewSMTPSender(config.NewTestConfig().Mail, slog.New(slog.DiscardHandler))

	err := sender.Send(context.Background(), notification.Email{})

	assert.ErrorIs(t, err, ErrNoRecipient)
}
