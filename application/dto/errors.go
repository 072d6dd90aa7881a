package dto

import (
	"fmt"
	"strings"
)

// FieldError describes one rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found in a request payload
type ValidationError struct {
	Fields []FieldError
}

// Error joins the field problems in the order they were found
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

// Add records a problem with field
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when nothing was recorded
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func requireString(errs *ValidationError, field string, value *string) {
	if value == nil {
		errs.Add(field, "is required")
		return
	}
	if strings.TrimSpace(*value) == "" {
		errs.Add(field, "must not be blank")
	}
}
