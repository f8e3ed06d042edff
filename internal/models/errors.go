package models

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Error categories. Every error a component returns to a caller wraps one of
// these so the HTTP layer can map it with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Specific application errors
var (
	ErrInvalidRating      = fmt.Errorf("%w: invalid rating", ErrValidation)
	ErrInvalidIdentifier  = fmt.Errorf("%w: invalid identifier", ErrValidation)
	ErrRecipeNotFound     = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrFavoriteExists     = fmt.Errorf("%w: recipe already in favorites", ErrAlreadyExists)
	ErrUserAlreadyExists  = fmt.Errorf("%w: user already exists", ErrAlreadyExists)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// StoreError marks err as a store failure while keeping the cause for logs.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// APIError represents a structured API error response
type APIError struct {
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Status    int               `json:"status"`
	Detail    string            `json:"detail,omitempty"`
	Instance  string            `json:"instance,omitempty"`
	Errors    []ValidationError `json:"errors"`
	Timestamp string            `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Detail)
}

// NewAPIError creates a new APIError
func NewAPIError(status int, title, detail, instance string) *APIError {
	return &APIError{
		Type:      fmt.Sprintf("https://api.recipefinder.local/problems/%s", kebabCase(title)),
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  instance,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// AddValidationError adds a validation error to the API error
func (e *APIError) AddValidationError(field, code, message string) {
	if e.Errors == nil {
		e.Errors = make([]ValidationError, 0)
	}
	e.Errors = append(e.Errors, ValidationError{
		Field:   field,
		Code:    code,
		Message: message,
	})
}

// ErrorStatus maps an application error onto an HTTP status and the detail
// that is safe to show the client. Store failures never expose their cause.
func ErrorStatus(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, clientDetail(err, ErrValidation)
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, clientDetail(err, ErrNotFound)
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict, clientDetail(err, ErrAlreadyExists)
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, clientDetail(err, ErrUnauthorized)
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// clientDetail strips the category prefix, so ErrInvalidRating renders as
// "invalid rating".
func clientDetail(err, category error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, category.Error()+": "); i >= 0 {
		return msg[i+len(category.Error())+2:]
	}
	return msg
}

// kebabCase converts a string to kebab-case
func kebabCase(s string) string {
	allUpper := true
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			allUpper = false
			break
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}

	if allUpper && hasLetter && !strings.Contains(s, " ") && !strings.Contains(s, "_") {
		return s
	}

	var b strings.Builder
	for i, r := range s {
		if r == ' ' || r == '_' {
			b.WriteByte('-')
		} else if i > 0 && r >= 'A' && r <= 'Z' && !strings.HasSuffix(b.String(), "-") {
			b.WriteByte('-')
			b.WriteRune(r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
