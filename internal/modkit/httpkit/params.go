package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	perr "chimera/internal/platform/errors"
	"chimera/internal/platform/net/http/bind"
)

// Param returns a named path parameter, empty when absent
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// QueryInt reads an integer query parameter, def when absent
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s must be an integer", name), name)
	}
	return n, nil
}

// Query reads a trimmed string query parameter
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// Validate runs struct validation for inputs read from the path or query
func Validate(v any) error {
	return bind.Struct(v)
}
