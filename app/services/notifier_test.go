package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/rainy-catalog/app/configs"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"go.uber.org/zap"
)

func TestBuildContactEmail(t *testing.T) {
	contact := &models.Contact{
		ID:        42,
		Name:      "Ana <b>López</b>",
		Email:     "ana@example.com",
		Message:   "Hola\n<script>alert(1)</script>quiero una cotización",
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}

	email := BuildContactEmail(contact, "https://rainy.example.com/")

	if !strings.Contains(email.Subject, "Ana <b>López</b>") {
		t.Errorf("subject = %q", email.Subject)
	}
	if !strings.Contains(email.Text, "Phone: -") {
		t.Error("missing phone placeholder in text body")
	}
	if !strings.Contains(email.Text, "https://rainy.example.com/admin/api/contacts/42") {
		t.Error("missing admin link in text body")
	}
	if strings.Contains(email.HTML, "<script>") || strings.Contains(email.HTML, "<b>") {
		t.Error("html body was not sanitized")
	}
	if !strings.Contains(email.HTML, "Hola<br>") {
		t.Error("newlines should become <br>")
	}
	if !strings.Contains(email.HTML, `href="https://rainy.example.com/admin/api/contacts/42"`) {
		t.Error("missing admin link in html body")
	}
}

func TestBuildContactEmailWithoutAdminURL(t *testing.T) {
	phone := "+56 9 1234 5678"
	email := BuildContactEmail(&models.Contact{ID: 1, Name: "Luis", Phone: &phone}, "")
	if strings.Contains(email.Text, "View in admin") || strings.Contains(email.HTML, "View in admin") {
		t.Error("no admin link expected")
	}
	if !strings.Contains(email.Text, "Phone: +56 9 1234 5678") {
		t.Errorf("text = %q", email.Text)
	}
}

func TestNewContactNotifier(t *testing.T) {
	logger := zap.NewNop()
	tests := []struct {
		name    string
		env     configs.ENV
		want    string
		wantErr bool
	}{
		{name: "log", env: configs.ENV{MailDriver: "log"}, want: "*services.LogNotifier"},
		{name: "no_recipient", env: configs.ENV{MailDriver: "smtp"}, want: "*services.LogNotifier"},
		{name: "smtp", env: configs.ENV{MailDriver: "SMTP", ContactNotificationEmail: "sales@example.com", EmailHost: "localhost", EmailPort: 25}, want: "*services.Mailer"},
		{name: "mailgun", env: configs.ENV{MailDriver: "mailgun", ContactNotificationEmail: "sales@example.com", MailgunDomain: "mg.example.com", MailgunAPIKey: "key"}, want: "*services.MailgunNotifier"},
		{name: "mailgun_incomplete", env: configs.ENV{MailDriver: "mailgun", ContactNotificationEmail: "sales@example.com"}, wantErr: true},
		{name: "unknown", env: configs.ENV{MailDriver: "pigeon", ContactNotificationEmail: "sales@example.com"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NewContactNotifier(tt.env, logger)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := typeName(n); got != tt.want {
				t.Errorf("notifier = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLogNotifier(t *testing.T) {
	if err := NewLogNotifier(zap.NewNop()).NotifyContact(context.Background(), &models.Contact{ID: 1}); err != nil {
		t.Fatal(err)
	}
}

func typeName(n ContactNotifier) string {
	switch n.(type) {
	case *LogNotifier:
		return "*services.LogNotifier"
	case *Mailer:
		return "*services.Mailer"
	case *MailgunNotifier:
		return "*services.MailgunNotifier"
	}
	return "unknown"
}
