package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/configs"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ContactNotifier is told about every stored contact message.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, contact *models.Contact) error
}

type ContactEmail struct {
	Subject string
	Text    string
	HTML    string
}

var strictPolicy = bluemonday.StrictPolicy()

func BuildContactEmail(contact *models.Contact, adminURL string) ContactEmail {
	phone := "-"
	if contact.Phone != nil && *contact.Phone != "" {
		phone = *contact.Phone
	}

	link := ""
	if adminURL != "" {
		link = fmt.Sprintf("%s/admin/api/contacts/%d", strings.TrimSuffix(adminURL, "/"), contact.ID)
	}

	subject := fmt.Sprintf("New contact message from %s", contact.Name)

	var text strings.Builder
	fmt.Fprintf(&text, "Name: %s\n", contact.Name)
	fmt.Fprintf(&text, "Email: %s\n", contact.Email)
	fmt.Fprintf(&text, "Phone: %s\n", phone)
	fmt.Fprintf(&text, "Received: %s\n\n", contact.CreatedAt.Format("2006-01-02 15:04"))
	text.WriteString(contact.Message)
	text.WriteString("\n")
	if link != "" {
		fmt.Fprintf(&text, "\nView in admin: %s\n", link)
	}

	message := strings.ReplaceAll(strictPolicy.Sanitize(contact.Message), "\n", "<br>")

	var html strings.Builder
	html.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"></head><body style="font-family: Arial, sans-serif; color: #333;">`)
	html.WriteString("<h2>New contact message</h2><table>")
	fmt.Fprintf(&html, "<tr><td><strong>Name</strong></td><td>%s</td></tr>", strictPolicy.Sanitize(contact.Name))
	fmt.Fprintf(&html, "<tr><td><strong>Email</strong></td><td>%s</td></tr>", strictPolicy.Sanitize(contact.Email))
	fmt.Fprintf(&html, "<tr><td><strong>Phone</strong></td><td>%s</td></tr>", strictPolicy.Sanitize(phone))
	html.WriteString("</table>")
	fmt.Fprintf(&html, "<p>%s</p>", message)
	if link != "" {
		fmt.Fprintf(&html, `<p><a href="%s">View in admin</a></p>`, link)
	}
	html.WriteString("</body></html>")

	return ContactEmail{
		Subject: subject,
		Text:    text.String(),
		HTML:    html.String(),
	}
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) NotifyContact(ctx context.Context, contact *models.Contact) error {
	n.logger.Info("NotifyContact: new contact message",
		zap.Uint("id", contact.ID),
		zap.String("name", contact.Name),
		zap.String("email", contact.Email),
	)
	return nil
}

// NewContactNotifier picks the delivery channel from MAIL_DRIVER. Without a
// recipient address messages are only logged.
func NewContactNotifier(env configs.ENV, logger *zap.Logger) (ContactNotifier, error) {
	driver := strings.ToLower(env.MailDriver)
	if driver != "log" && env.ContactNotificationEmail == "" {
		logger.Warn("NewContactNotifier: CONTACT_NOTIFICATION_EMAIL not set, falling back to log driver",
			zap.String("driver", driver))
		driver = "log"
	}

	switch driver {
	case "smtp":
		return NewMailer(Config{
			Host:     env.EmailHost,
			Port:     env.EmailPort,
			Username: env.EmailUsername,
			Password: env.EmailPassword,
			From:     env.EmailFrom,
			To:       env.ContactNotificationEmail,
			AdminURL: env.AppURL,
		}, logger), nil
	case "mailgun":
		if env.MailgunDomain == "" || env.MailgunAPIKey == "" {
			return nil, errors.New("mailgun driver requires MAILGUN_DOMAIN and MAILGUN_API_KEY")
		}
		return NewMailgunNotifier(env.MailgunDomain, env.MailgunAPIKey, env.EmailFrom, env.ContactNotificationEmail, env.AppURL, logger), nil
	case "log", "":
		return NewLogNotifier(logger), nil
	default:
		return nil, errors.Errorf("unsupported MAIL_DRIVER %q", env.MailDriver)
	}
}
