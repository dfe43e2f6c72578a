// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes for domain errors.
const (
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeDocumentsNotFound     = "DOCUMENTS_NOT_FOUND"
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeDatabaseNotConfigured = "DATABASE_NOT_CONFIGURED"
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeServiceUnavailable    = "SERVICE_UNAVAILABLE"
)

// Sentinel values for use with errors.Is. Matching is done on the error code only.
var (
	ErrDocumentNotFound      = &DomainError{Code: ErrCodeNotFound}
	ErrDocumentsNotFound     = &DomainError{Code: ErrCodeDocumentsNotFound}
	ErrInvalidArgument       = &DomainError{Code: ErrCodeValidation}
	ErrDatabaseNotConfigured = &DomainError{Code: ErrCodeDatabaseNotConfigured}
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a domain error with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDocumentNotFoundError creates the error returned when a single lookup misses.
func NewDocumentNotFoundError(id string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    "document not found",
		Details:    id,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDocumentsNotFoundError creates the error returned when a bulk lookup resolves nothing.
func NewDocumentsNotFoundError(ids []string) *DomainError {
	return &DomainError{
		Code:       ErrCodeDocumentsNotFound,
		Message:    "no documents found",
		Details:    strings.Join(ids, ","),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInvalidArgumentError creates a validation error for a bad caller argument.
func NewInvalidArgumentError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewDatabaseNotConfiguredError creates the error returned when no database collaborator is available.
func NewDatabaseNotConfiguredError(details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeDatabaseNotConfigured,
		Message:    "database not configured",
		Details:    details,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewBadRequestError creates a new bad request error.
func NewBadRequestError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(service string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeServiceUnavailable,
		Message:    fmt.Sprintf("%s is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// IsDomainError checks if the error is a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsNotFound checks if the error is a single document not found error.
func IsNotFound(err error) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == ErrCodeNotFound
}

// IsDocumentsNotFound checks if the error is a bulk lookup miss.
func IsDocumentsNotFound(err error) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == ErrCodeDocumentsNotFound
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == ErrCodeValidation
}

// IsDatabaseNotConfigured checks if the error reports a missing database.
func IsDatabaseNotConfigured(err error) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == ErrCodeDatabaseNotConfigured
}
