package domain

import (
	"errors"
	"fmt"
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// Employee errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

// ValidationError carries every rule violation of a request, keyed by field.
// It is returned as a value; nothing is persisted when it is non-nil.
type ValidationError struct {
	Fields map[string][]string
	order  []string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Has reports whether field already has a message
func (e *ValidationError) Has(field string) bool {
	return e != nil && len(e.Fields[field]) > 0
}

// Empty reports whether no violation was recorded
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns e, or nil when nothing was recorded
func (e *ValidationError) OrNil() *ValidationError {
	if e.Empty() {
		return nil
	}
	return e
}

// Summary returns the first recorded message and how many others follow it
func (e *ValidationError) Summary() string {
	if e.Empty() {
		return "The given data was invalid."
	}

	total := 0
	for _, msgs := range e.Fields {
		total += len(msgs)
	}

	first := e.Fields[e.order[0]][0]
	switch rest := total - 1; rest {
	case 0:
		return first
	case 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}
