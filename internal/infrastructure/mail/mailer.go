package mail

import (
	"context"
	"fmt"

	"hospital-management-api/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// NewMailer returns an SMTP mailer, or a mailer that only logs when no SMTP host
// is configured.
func NewMailer(cfg config.SMTPConfig, log *logrus.Logger) Mailer {
	if cfg.Host == "" {
		log.Warn("SMTP_HOST is not set, outgoing mail will be logged instead of sent")
		return &logMailer{log: log}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

type logMailer struct {
	log *logrus.Logger
}

func (m *logMailer) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logrus.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
