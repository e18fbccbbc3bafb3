package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/verbos-api/internal/api/shared"
	"github.com/phrazzld/verbos-api/internal/domain"
	"github.com/phrazzld/verbos-api/internal/domain/mastery"
	"github.com/phrazzld/verbos-api/internal/service"
	"github.com/phrazzld/verbos-api/internal/service/practice"
	"github.com/phrazzld/verbos-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrVerbNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrVerbExists),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, practice.ErrInvalidMode),
		errors.Is(err, mastery.ErrInvalidMode),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	// Special cases
	case errors.Is(err, practice.ErrNoVerbs):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrVerbNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Verb not found"

	case errors.Is(err, service.ErrVerbExists),
		errors.Is(err, store.ErrDuplicate):
		return "Verb already exists"

	case errors.Is(err, practice.ErrInvalidMode),
		errors.Is(err, mastery.ErrInvalidMode):
		return "Invalid practice mode"

	case errors.Is(err, domain.ErrInvalidPerson):
		return "Invalid person"

	// Domain validation messages describe the rule that failed and are
	// safe to show, minus the shared prefix.
	case errors.Is(err, domain.ErrValidation):
		return validationMessage(err)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid verb data"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	default:
		return "An unexpected error occurred"
	}
}

// validationMessage extracts the innermost domain validation message.
func validationMessage(err error) string {
	for _, target := range []error{
		domain.ErrEmptyInfinitive,
		domain.ErrInfinitiveTooShort,
		domain.ErrInvalidSuffix,
		domain.ErrInvalidCategory,
		domain.ErrInvalidMastery,
		domain.ErrInvalidOverridePerson,
		domain.ErrUnexpectedOverrides,
		domain.ErrMissingStemChange,
		domain.ErrEmptyStemChangeTarget,
		domain.ErrUnexpectedStemChange,
	} {
		if errors.Is(err, target) {
			msg := strings.TrimPrefix(target.Error(), domain.ErrValidation.Error()+": ")
			return strings.ToUpper(msg[:1]) + msg[1:]
		}
	}
	return "Validation error"
}

// HandleAPIError maps err to a status code and a safe message, logs the
// full error and writes the response. fallback replaces the generic message
// on internal errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'AnswerRequest.Mode' Error:Field validation for 'Mode' failed on the 'oneof' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required", "required_if":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
