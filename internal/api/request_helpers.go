package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/flashdeck/internal/api/shared"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// pathID parses a positive integer ID from the URL path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return id, nil
}

// queryID parses an optional positive integer query parameter.
func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return &id, nil
}

// requireConfirmation guards destructive requests behind ?confirm=true.
func requireConfirmation(r *http.Request) error {
	if !shared.QueryBool(r, "confirm") {
		return ErrConfirmationRequired
	}
	return nil
}

// decodeRequest decodes and validates the JSON body into v. Malformed JSON
// becomes a validation error; errors from the body's own types, such as an
// unknown grade name, pass through.
func decodeRequest(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) || errors.Is(err, domain.ErrInvalidGrade) {
			return err
		}
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrValidation, err)
	}
	return shared.ValidateRequest(v)
}
