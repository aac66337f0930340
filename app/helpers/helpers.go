package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

type contextKey string

const (
	ContextKeyStaffUser contextKey = "staffUser"
)

// Date bucket values accepted by the admin list filters.
const (
	DateFilterToday     = "today"
	DateFilterPast7Days = "past_7_days"
	DateFilterThisMonth = "this_month"
	DateFilterThisYear  = "this_year"
)

// FormatValidationErrors maps validator failures to field -> messages, keyed
// by the field's JSON name when the validator was built with NewValidator.
func FormatValidationErrors(errs validator.ValidationErrors) map[string][]string {
	errorMessages := make(map[string][]string)
	for _, err := range errs {
		field := err.Field()
		var msg string
		switch err.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Enter a valid email address."
		case "max":
			msg = fmt.Sprintf("Ensure this field has no more than %s characters.", err.Param())
		case "min":
			msg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
		case "gte":
			msg = fmt.Sprintf("Ensure this value is greater than or equal to %s.", err.Param())
		case "numeric", "decimal":
			msg = "A valid number is required."
		case "number":
			msg = "A valid integer is required."
		case "slug":
			msg = "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."
		default:
			msg = fmt.Sprintf("Validation %s failed.", err.Tag())
		}
		errorMessages[field] = append(errorMessages[field], msg)
	}
	return errorMessages
}

// NewValidator returns a validator that reports fields by their json tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// RequestBaseURL returns scheme://host for the incoming request. A scheme
// already set on r.URL (see middlewares.ForwardedProto) wins over r.TLS.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if r.URL != nil && r.URL.Scheme != "" {
		scheme = r.URL.Scheme
	}
	return scheme + "://" + r.Host
}

// AbsoluteURL resolves ref against base. References that are already
// absolute are returned as they are.
func AbsoluteURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return refURL.String()
	}
	baseURL, err := url.Parse(base)
	if err != nil || base == "" {
		return ref
	}
	if baseURL.Path == "" {
		baseURL.Path = "/"
	}
	return baseURL.ResolveReference(refURL).String()
}

// DateFilterSince returns the lower bound for a date bucket, or nil when the
// value is empty or unknown.
func DateFilterSince(value string, now time.Time) *time.Time {
	var since time.Time
	switch value {
	case DateFilterToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case DateFilterPast7Days:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)
	case DateFilterThisMonth:
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case DateFilterThisYear:
		since = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}
	return &since
}

// ParseBoolParam accepts the usual spellings of a boolean query value.
func ParseBoolParam(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		b := true
		return &b
	case "0", "false", "no", "off":
		b := false
		return &b
	}
	return nil
}

func ParseUintParam(value string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// NullableString trims s and returns nil when nothing is left.
func NullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
