package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/unifiedui/document-service/internal/domain/errors"
)

func TestDomainError_Error(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: document not found (a)", domainerrors.NewDocumentNotFoundError("a").Error())
	assert.Equal(t, "INTERNAL_ERROR: boom", domainerrors.NewInternalError("boom", nil).Error())
	assert.Equal(t, "DATABASE_NOT_CONFIGURED", domainerrors.ErrDatabaseNotConfigured.Error())
}

func TestDomainError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", domainerrors.NewDocumentNotFoundError("a"))

	assert.True(t, errors.Is(err, domainerrors.ErrDocumentNotFound))
	assert.False(t, errors.Is(err, domainerrors.ErrDocumentsNotFound))
	assert.True(t, errors.Is(domainerrors.NewDocumentsNotFoundError(nil), domainerrors.ErrDocumentsNotFound))
	assert.True(t, errors.Is(domainerrors.NewInvalidArgumentError("bad", ""), domainerrors.ErrInvalidArgument))
	assert.True(t, errors.Is(domainerrors.NewDatabaseNotConfiguredError(""), domainerrors.ErrDatabaseNotConfigured))
}

func TestDomainError_Unwrap(t *testing.T) {
	err := domainerrors.NewInternalError("failed", assert.AnError)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, assert.AnError.Error(), err.Details)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *domainerrors.DomainError
		code   string
		status int
	}{
		{"document not found", domainerrors.NewDocumentNotFoundError("a"), domainerrors.ErrCodeNotFound, http.StatusNotFound},
		{"documents not found", domainerrors.NewDocumentsNotFoundError([]string{"a", "b"}), domainerrors.ErrCodeDocumentsNotFound, http.StatusNotFound},
		{"invalid argument", domainerrors.NewInvalidArgumentError("bad", ""), domainerrors.ErrCodeValidation, http.StatusBadRequest},
		{"not configured", domainerrors.NewDatabaseNotConfiguredError(""), domainerrors.ErrCodeDatabaseNotConfigured, http.StatusServiceUnavailable},
		{"bad request", domainerrors.NewBadRequestError("bad", ""), domainerrors.ErrCodeBadRequest, http.StatusBadRequest},
		{"unavailable", domainerrors.NewServiceUnavailableError("couchdb", nil), domainerrors.ErrCodeServiceUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestPredicates(t *testing.T) {
	notFound := fmt.Errorf("wrapped: %w", domainerrors.NewDocumentNotFoundError("a"))

	assert.True(t, domainerrors.IsDomainError(notFound))
	assert.True(t, domainerrors.IsNotFound(notFound))
	assert.False(t, domainerrors.IsDocumentsNotFound(notFound))
	assert.True(t, domainerrors.IsDocumentsNotFound(domainerrors.NewDocumentsNotFoundError([]string{"a"})))
	assert.True(t, domainerrors.IsValidationError(domainerrors.NewInvalidArgumentError("bad", "")))
	assert.True(t, domainerrors.IsDatabaseNotConfigured(domainerrors.NewDatabaseNotConfiguredError("")))

	assert.False(t, domainerrors.IsDomainError(assert.AnError))
	assert.False(t, domainerrors.IsNotFound(nil))

	domainErr, ok := domainerrors.GetDomainError(notFound)
	require.True(t, ok)
	assert.Equal(t, "a", domainErr.Details)
}
