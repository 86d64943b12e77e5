package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPermissionDenied means the caller's role lacks the required tier.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrForbidden means the role suffices but the caller may not touch this resource.
	ErrForbidden       = errors.New("access forbidden")
	ErrUserNotFound    = errors.New("user not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrUserExists      = errors.New("user already exists")
	ErrValidation      = errors.New("validation failed")
)

// ValidationError carries per-field messages for rejected input.
// It matches ErrValidation with errors.Is, plus Cause when one is set.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

// NewValidationError returns an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for field. The first message per field wins.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
	return e
}

// Wrap attaches an underlying cause such as ErrUserExists.
func (e *ValidationError) Wrap(cause error) *ValidationError {
	e.Cause = cause
	return e
}

// Err returns nil when no field was rejected.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrValidation, e.Cause}
	}
	return []error{ErrValidation}
}

// DuplicateUsername builds the conflict error for a taken username.
func DuplicateUsername() error {
	return NewValidationError().
		Add("username", "a user with that username already exists").
		Wrap(ErrUserExists).
		Err()
}
