package services

import (
	"context"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	AdminURL string
}

type Mailer struct {
	config Config
	dialer *gomail.Dialer
	logger *zap.Logger
}

func NewMailer(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		config: cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (m *Mailer) SendEmail(to, subject, textBody, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("SendEmail: failed to send email", zap.String("to", to), zap.Error(err))
		return errors.Wrap(err, "send email")
	}
	return nil
}

func (m *Mailer) NotifyContact(ctx context.Context, contact *models.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	email := BuildContactEmail(contact, m.config.AdminURL)
	return m.SendEmail(m.config.To, email.Subject, email.Text, email.HTML)
}
