package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/domain"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// ErrEmptyBody is returned by DecodeJSON for a request without a body.
var ErrEmptyBody = errors.New("request body is required")

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

// ValidateRequest runs the struct's validate tags and then its own Validate
// method, if it has one.
func ValidateRequest(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return err
	}
	if c, ok := v.(interface{ Validate() error }); ok {
		return c.Validate()
	}
	return nil
}

// ParsePage reads the qn (page number) and qs (page size) query parameters.
// Missing values take the defaults; a size above the configured maximum is
// rejected.
func ParsePage(r *http.Request, cfg config.PaginationConfig) (domain.Page, error) {
	page := domain.Page{Number: domain.DefaultPageNumber, Size: cfg.DefaultPageSize}
	if page.Size <= 0 {
		page.Size = domain.DefaultPageSize
	}

	q := r.URL.Query()
	if raw := q.Get("qn"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Page{}, fmt.Errorf("%w: qn must be an integer", domain.ErrInvalidPage)
		}
		page.Number = n
	}
	if raw := q.Get("qs"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Page{}, fmt.Errorf("%w: qs must be an integer", domain.ErrInvalidPage)
		}
		page.Size = n
	}

	if err := page.Validate(); err != nil {
		return domain.Page{}, err
	}
	if cfg.MaxPageSize > 0 && page.Size > cfg.MaxPageSize {
		return domain.Page{}, fmt.Errorf("%w: qs cannot exceed %d", domain.ErrInvalidPage, cfg.MaxPageSize)
	}
	return page, nil
}

// QueryBool reports whether the query parameter name is set to a true value
// (1, t, true). Absent or unparsable values are false.
func QueryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
