package services

import (
	"context"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/mailgun/mailgun-go/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type MailgunNotifier struct {
	mg       *mailgun.MailgunImpl
	from     string
	to       string
	adminURL string
	logger   *zap.Logger
}

func NewMailgunNotifier(domain, apiKey, from, to, adminURL string, logger *zap.Logger) *MailgunNotifier {
	logger.Info("Mailgun initialized", zap.String("domain", domain))
	return &MailgunNotifier{
		mg:       mailgun.NewMailgun(domain, apiKey),
		from:     from,
		to:       to,
		adminURL: adminURL,
		logger:   logger,
	}
}

func (n *MailgunNotifier) NotifyContact(ctx context.Context, contact *models.Contact) error {
	email := BuildContactEmail(contact, n.adminURL)

	message := n.mg.NewMessage(n.from, email.Subject, email.Text, n.to)
	message.SetHtml(email.HTML)
	message.SetReplyTo(contact.Email)

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, id, err := n.mg.Send(sendCtx, message)
	if err != nil {
		return errors.Wrap(err, "mailgun send")
	}
	n.logger.Debug("NotifyContact: mailgun message queued", zap.String("message_id", id))
	return nil
}
