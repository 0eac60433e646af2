package shared

import (
	"strings"
	"time"

	"recognition/internal/domain/apperr"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD. An empty value yields the zero time.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// OptionalDate parses an optional request date, reporting bad input as a
// validation error on field.
func OptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.Invalid(field, "must be a valid date in YYYY-MM-DD format")
	}
	return &parsed, nil
}
