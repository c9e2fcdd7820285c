package shared

import (
	"net/http"
	"strings"
	"time"

	"staffhub/internal/transport/http/api"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validator collects field errors for one request payload. Errors are
// reported in the order the checks ran.
type Validator struct {
	errs []FieldError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Fail(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Fail(field, field+" is required")
	}
}

// OneOf checks value against the allowed set, case-insensitively. Empty
// values pass; pair with Require when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed []string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for _, candidate := range allowed {
		if strings.EqualFold(value, candidate) {
			return
		}
	}
	v.Fail(field, "must be one of: "+strings.Join(allowed, ", "))
}

func (v *Validator) Date(field, raw string) (time.Time, bool) {
	parsed, err := ParseDate(strings.TrimSpace(raw))
	if err != nil || parsed.IsZero() {
		v.Fail(field, "must be a valid date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return parsed, true
}

func (v *Validator) Span(startField string, start time.Time, endField string, end time.Time) {
	if start.IsZero() || end.IsZero() {
		return
	}
	if end.Before(start) {
		v.Fail(endField, "must not be before "+startField)
	}
}

// Reject writes the validation failure and reports whether it did, so
// handlers can bail with a single if.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if len(v.errs) == 0 {
		return false
	}
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": v.errs},
		requestID,
	)
	return true
}
