package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/Rakhulsr/rainy-catalog/app/helpers"
	"github.com/Rakhulsr/rainy-catalog/app/models"
	"github.com/Rakhulsr/rainy-catalog/app/repositories"
	"github.com/Rakhulsr/rainy-catalog/app/serializers"
	"github.com/Rakhulsr/rainy-catalog/app/services"
	"github.com/Rakhulsr/rainy-catalog/app/utils/metrics"
	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"go.uber.org/zap"
)

const maxContactBody = 1 << 20

const (
	msgRequired  = "This field is required."
	msgBlank     = "This field may not be blank."
	msgNull      = "This field may not be null."
	msgNotString = "Not a valid string."
	msgTooLarge  = "Request body is too large."
)

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"max=20"`
	Email   string `json:"email" validate:"required,max=254,email"`
	Message string `json:"message" validate:"required"`
}

var contactFields = []string{"name", "phone", "email", "message"}

type ContactHandler struct {
	repo      repositories.ContactRepositoryImpl
	notifier  services.ContactNotifier
	validator *validator.Validate
	render    *render.Render
	logger    *zap.Logger
}

func NewContactHandler(
	repo repositories.ContactRepositoryImpl,
	notifier services.ContactNotifier,
	r *render.Render,
	logger *zap.Logger,
) *ContactHandler {
	return &ContactHandler{
		repo:      repo,
		notifier:  notifier,
		validator: helpers.NewValidator(),
		render:    r,
		logger:    logger,
	}
}

// NewContact stores a contact message and then tries to notify staff. The
// notification outcome never changes the response.
func (h *ContactHandler) NewContact(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > maxContactBody {
		_ = h.render.JSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": msgTooLarge})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	values, present, fieldErrs, bodyErr := decodeContactValues(r)
	if bodyErr != nil {
		_ = h.render.JSON(w, bodyErr.status, map[string]string{"detail": bodyErr.detail})
		return
	}
	if _, ok := fieldErrs["non_field_errors"]; ok {
		_ = h.render.JSON(w, http.StatusBadRequest, fieldErrs)
		return
	}
	if fieldErrs == nil {
		fieldErrs = map[string][]string{}
	}

	req := contactRequest{
		Name:    strings.TrimSpace(values["name"]),
		Phone:   strings.TrimSpace(values["phone"]),
		Email:   strings.TrimSpace(values["email"]),
		Message: strings.TrimSpace(values["message"]),
	}

	if err := h.validator.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for field, msgs := range helpers.FormatValidationErrors(validationErrors) {
				if _, typeErr := fieldErrs[field]; typeErr {
					continue
				}
				for i, msg := range msgs {
					if msg == msgRequired && present[field] {
						msgs[i] = msgBlank
					}
				}
				fieldErrs[field] = msgs
			}
		} else {
			h.logger.Error("NewContact: validator failed", zap.Error(err))
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"detail": "A server error occurred."})
			return
		}
	}
	if len(fieldErrs) > 0 {
		_ = h.render.JSON(w, http.StatusBadRequest, fieldErrs)
		return
	}

	contact := &models.Contact{
		Name:    req.Name,
		Phone:   helpers.NullableString(req.Phone),
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.repo.Create(r.Context(), contact); err != nil {
		h.logger.Error("NewContact: failed to save contact", zap.Error(err))
		sentry.CaptureException(err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"detail": "A server error occurred."})
		return
	}
	metrics.ContactsCreated.Inc()

	h.notify(r.Context(), contact)

	_ = h.render.JSON(w, http.StatusCreated, serializers.NewContact(*contact))
}

func (h *ContactHandler) notify(ctx context.Context, contact *models.Contact) {
	if h.notifier == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			h.notifyFailed(contact, fmt.Errorf("contact notifier panicked: %v", rec))
		}
	}()
	if err := h.notifier.NotifyContact(ctx, contact); err != nil {
		h.notifyFailed(contact, err)
	}
}

func (h *ContactHandler) notifyFailed(contact *models.Contact, err error) {
	metrics.NotificationFailures.Inc()
	h.logger.Error("NewContact: failed to send contact notification",
		zap.Uint("contact_id", contact.ID),
		zap.Error(err),
	)
	sentry.CaptureException(err)
}

type contactBodyError struct {
	status int
	detail string
}

func newContactBodyError(prefix string, err error) *contactBodyError {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &contactBodyError{status: http.StatusRequestEntityTooLarge, detail: msgTooLarge}
	}
	return &contactBodyError{status: http.StatusBadRequest, detail: prefix + " - " + err.Error()}
}

// decodeContactValues reads a JSON or form body into raw field values. It
// reports which fields were sent and per-field type errors. A non-nil
// *contactBodyError means the body could not be read or parsed at all.
func decodeContactValues(r *http.Request) (map[string]string, map[string]bool, map[string][]string, *contactBodyError) {
	values := make(map[string]string, len(contactFields))
	present := make(map[string]bool, len(contactFields))

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxContactBody); err != nil {
				return nil, nil, nil, newContactBodyError("Multipart form parse error", err)
			}
		} else if err := r.ParseForm(); err != nil {
			return nil, nil, nil, newContactBodyError("Form parse error", err)
		}
		for _, field := range contactFields {
			if v, ok := r.PostForm[field]; ok && len(v) > 0 {
				values[field] = v[0]
				present[field] = true
			}
		}
		return values, present, nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, nil, nil, newContactBodyError("JSON parse error", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return values, present, nil, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return nil, nil, map[string][]string{
				"non_field_errors": {"Invalid data. Expected a dictionary."},
			}, nil
		}
		return nil, nil, nil, newContactBodyError("JSON parse error", err)
	}

	fieldErrs := map[string][]string{}
	for _, field := range contactFields {
		msg, ok := raw[field]
		if !ok {
			continue
		}
		present[field] = true
		value, errMsg := jsonString(msg)
		if errMsg == msgNull && field == "phone" {
			continue
		}
		if errMsg != "" {
			fieldErrs[field] = []string{errMsg}
			continue
		}
		values[field] = value
	}
	if len(fieldErrs) == 0 {
		fieldErrs = nil
	}
	return values, present, fieldErrs, nil
}

// jsonString accepts strings and numbers, like a form field would.
func jsonString(raw json.RawMessage) (string, string) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return "", msgNull
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, ""
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return n.String(), ""
	}
	return "", msgNotString
}
