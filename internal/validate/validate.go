// Package validate turns raw request bodies into typed, sanitized values.
// Each entity has a create schema enforcing required fields and defaults, and
// an update schema where every field is an optional patch merged against the
// loaded entity. Validation surfaces the first failing field's message.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their json names so messages match the wire format.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

func fieldErr(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// run executes struct-tag validation and converts the first failure into a
// FieldError with a human-readable message.
func run(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fieldErr(fe.Field(), messageFor(fe))
	}
	return fieldErr("", "Invalid request")
}

var requiredMessages = map[string]string{
	"name":            "Project name is required",
	"bidDueDate":      "Bid due date is required",
	"companyName":     "Company name is required",
	"projectId":       "Project is required",
	"subcontractorId": "Subcontractor is required",
	"divisionId":      "Division is required",
	"bidInvitationId": "Bid invitation is required",
	"email":           "Email is required",
	"password":        "Password is required",
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind() == reflect.Slice {
			return "At least one division is required"
		}
		return fmt.Sprintf("%s is too short", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "email":
		return "Invalid email"
	case "oneof":
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	default:
		return fmt.Sprintf("Invalid value for %s", fe.Field())
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(field, s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fieldErr(field, fmt.Sprintf("Invalid date for %s", field))
}

func parseDatePtr(field string, s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// optText sanitizes an optional free-text field, collapsing empty results to
// absent so the store holds NULL rather than "".
func optText(s *string, clean func(string) string) *string {
	if s == nil {
		return nil
	}
	out := clean(*s)
	if out == "" {
		return nil
	}
	return &out
}
