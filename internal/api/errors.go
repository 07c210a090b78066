package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/copyforge-api/internal/api/shared"
	"github.com/phrazzld/copyforge-api/internal/domain"
	"github.com/phrazzld/copyforge-api/internal/generation"
	"github.com/phrazzld/copyforge-api/internal/redact"
	"github.com/phrazzld/copyforge-api/internal/service"
	"github.com/phrazzld/copyforge-api/internal/service/auth"
	"github.com/phrazzld/copyforge-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrProjectNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case generation.IsInvalidArgument(err),
		errors.Is(err, service.ErrInvalidProject),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	// Default: internal server error. Upstream generation failures land
	// here whatever status the model API answered with.
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
//
// Generation failures are the exception: their message is the last
// upstream attempt's message (or the generic refine message), passed
// through redact so a credential can never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var argErr *generation.ArgumentError
	var verrs validator.ValidationErrors

	switch {
	case errors.As(err, &argErr):
		return argErr.Message

	case errors.Is(err, generation.ErrRefineFailed):
		return generation.ErrRefineFailed.Error()

	case errors.Is(err, generation.ErrAllStrategiesExhausted):
		return redact.Error(err)

	case errors.Is(err, context.DeadlineExceeded):
		return "Request timed out"

	case errors.Is(err, context.Canceled):
		return "Request cancelled"

	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"

	// Authorization errors
	case errors.Is(err, service.ErrProjectNotOwned):
		return "You do not own this project"

	case errors.Is(err, domain.ErrUnauthorized):
		return "User ID not found or invalid"

	// Not found errors
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	// Bad request errors
	case errors.As(err, &verrs):
		return SanitizeValidationError(err)

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"

	case errors.Is(err, service.ErrInvalidProject):
		return invalidProjectMessage(err)

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// invalidProjectMessage surfaces domain validation messages, which are
// fixed strings and safe to return.
func invalidProjectMessage(err error) string {
	for _, known := range []error{
		domain.ErrEmptyProjectTitle,
		domain.ErrProjectTitleTooLong,
		domain.ErrUnknownPlatform,
		domain.ErrEmptyProjectTone,
		domain.ErrInvalidProjectStatus,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "Invalid project"
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the error envelope for err. defaultMsg, when set,
// replaces the generic message for errors that map to 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" &&
		!errors.Is(err, generation.ErrAllStrategiesExhausted) &&
		!errors.Is(err, generation.ErrRefineFailed) {
		message = defaultMsg
	}

	var opts []shared.ResponseOption
	if status == http.StatusForbidden || status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
}
