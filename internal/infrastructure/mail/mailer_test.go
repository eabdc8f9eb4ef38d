package mail

import (
	"bytes"
	"context"
	"testing"

	"hospital-management-api/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailer_LogsWithoutSMTPHost(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	mailer := NewMailer(config.SMTPConfig{}, log)
	_, ok := mailer.(*logMailer)
	require.True(t, ok)

	err := mailer.Send(context.Background(), Message{To: "a@example.com", Subject: "Hello", Body: "code 123456"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"to":"a@example.com"`)
	assert.Contains(t, buf.String(), "code 123456")
}

func TestNewMailer_SMTP(t *testing.T) {
	mailer := NewMailer(config.SMTPConfig{Host: "smtp.example.com", Port: 587, From: "noreply@example.com"}, logrus.New())
	m, ok := mailer.(*smtpMailer)
	require.True(t, ok)
	assert.Equal(t, "noreply@example.com", m.from)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Send(ctx, Message{To: "a@example.com"}), context.Canceled)
}
