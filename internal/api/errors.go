package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
	"github.com/phrazzld/flashdeck/internal/service"
	"github.com/phrazzld/flashdeck/internal/store"
	"github.com/phrazzld/flashdeck/internal/study"
)

// ErrConfirmationRequired is returned for a destructive request sent without
// confirm=true.
var ErrConfirmationRequired = errors.New("confirmation required")

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing their types to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return http.StatusInternalServerError

	case errors.Is(err, ErrConfirmationRequired):
		return http.StatusPreconditionRequired

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, study.ErrSessionNotFound):
		return http.StatusNotFound

	case errors.Is(err, study.ErrInvalidTransition),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidGrade),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &verrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err.
func GetSafeErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, ErrConfirmationRequired):
		return "Deletion requires confirm=true"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"
	case errors.Is(err, store.ErrTemplateNotFound):
		return "Template not found"
	case errors.Is(err, store.ErrCardNotFound):
		return "Card not found"
	case errors.Is(err, store.ErrMediaNotFound):
		return "Media not found"
	case errors.Is(err, store.ErrReviewStateNotFound):
		return "Review state not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, study.ErrSessionNotFound):
		return "Session not found"

	case errors.Is(err, study.ErrInvalidTransition):
		return "Action not allowed in the current session state"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrConflict):
		return "Concurrent update conflict, please retry"

	case errors.Is(err, domain.ErrInvalidGrade):
		return "Invalid grade: use 1-4 or again, hard, good, easy"
	case errors.Is(err, service.ErrUnknownMedia):
		return "Card references unknown media"
	case errors.Is(err, domain.ErrInvalidPage):
		return "Invalid pagination: qn and qs must be positive and qs within the maximum page size"
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &verrs):
		return SanitizeValidationError(err)
	case errors.Is(err, domain.ErrValidation):
		return validationDetail(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// validationDetail returns the domain validation message without the
// service and store context wrapped around it.
func validationDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrValidation.Error()); i >= 0 {
		return "Validation error" + strings.TrimPrefix(msg[i:], domain.ErrValidation.Error())
	}
	return "Validation error"
}

// SanitizeValidationError describes the first failed field of a validator
// error.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err and logs err in
// redacted form.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
