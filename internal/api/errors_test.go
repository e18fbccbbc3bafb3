package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/verbos-api/internal/api/shared"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/service/practice"
	"github.com/phrazzld/verbos-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"service not found", service.NewServiceError("verb", "get", service.ErrVerbNotFound), http.StatusNotFound},
		{"store not found", store.ErrVerbNotFound, http.StatusNotFound},
		{"service conflict", fmt.Errorf("add: %w", service.ErrVerbExists), http.StatusConflict},
		{"store conflict", store.NewStoreError("verb", "create", "dup", store.ErrVerbExists), http.StatusConflict},
		{"domain validation", domain.ErrInvalidSuffix, http.StatusBadRequest},
		{"invalid person", domain.ErrInvalidPerson, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"invalid mode", practice.ErrInvalidMode, http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"no verbs", practice.ErrNoVerbs, http.StatusNoContent},
		{"unknown error", errors.New("unknown error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expectedStatus, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"not found", service.ErrVerbNotFound, "Verb not found"},
		{"conflict", service.ErrVerbExists, "Verb already exists"},
		{"invalid mode", practice.ErrInvalidMode, "Invalid practice mode"},
		{"invalid person", fmt.Errorf("%w: %q", domain.ErrInvalidPerson, "vos"), "Invalid person"},
		{"suffix", service.NewServiceError("verb", "add", domain.ErrInvalidSuffix), "Infinitive must end in -ar, -er or -ir"},
		{"stem change", domain.ErrMissingStemChange, "Stem-changing verb requires a stem change"},
		{"bare validation", domain.ErrValidation, "Validation error"},
		{"internal details are hidden", errors.New("pq: password authentication failed"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	t.Run("fallback replaces the generic message on internal errors", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("boom"), "Failed to list verbs")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Failed to list verbs"}`, w.Body.String())
	})

	t.Run("fallback is ignored for mapped errors", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		HandleAPIError(w, httptest.NewRequest(http.MethodGet, "/", nil), service.ErrVerbNotFound, "Failed to get verb")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Verb not found"}`, w.Body.String())
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := shared.ValidateRequest(AnswerRequest{Mode: "table", Person: "yo"})
	assert.Equal(t, "Invalid Mode: invalid value", SanitizeValidationError(err))

	err = shared.ValidateRequest(CreateVerbRequest{Infinitive: "pedir", Type: "stem-changing"})
	assert.Equal(t, "Invalid StemChange: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
