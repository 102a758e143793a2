// Package service provides business logic for the application.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Service errors.
var (
	ErrValidation            = errors.New("validation failed")
	ErrProjectNotFound       = errors.New("project not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrCollaborationNotFound = errors.New("collaboration not found")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUnauthorized          = errors.New("authentication required")
	ErrForbidden             = errors.New("not allowed")
	ErrAlreadyRegistered     = errors.New("already registered for this event")
)

// ValidationError lists the fields that failed validation.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// fieldChecker accumulates invalid field names.
type fieldChecker struct {
	fields []string
}

func (c *fieldChecker) require(ok bool, field string) {
	if !ok {
		c.fields = append(c.fields, field)
	}
}

func (c *fieldChecker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
