package httpkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	perr "chimera/internal/platform/errors"
)

func TestParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/history/abc", nil)
	rc := chi.NewRouteContext()
	rc.URLParams.Add("id", " abc ")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

	if got := Param(req, "id"); got != "abc" {
		t.Fatalf("Param = %q", got)
	}
	if got := Param(req, "missing"); got != "" {
		t.Fatalf("missing Param = %q", got)
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		url     string
		want    int
		wantErr bool
	}{
		{"/x", 50, false},
		{"/x?limit=", 50, false},
		{"/x?limit=7", 7, false},
		{"/x?limit=seven", 0, true},
	}
	for _, tc := range tests {
		got, err := QueryInt(httptest.NewRequest(http.MethodGet, tc.url, nil), "limit", 50)
		if tc.wantErr {
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("%s: err = %v", tc.url, err)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("%s: got %d, %v", tc.url, got, err)
		}
	}
	if q := Query(httptest.NewRequest(http.MethodGet, "/x?h=+ab+", nil), "h"); q != "ab" {
		t.Fatalf("Query = %q", q)
	}
}

func TestValidate(t *testing.T) {
	type in struct {
		Limit int `json:"limit" validate:"omitempty,min=1,max=10"`
	}
	if err := Validate(in{Limit: 5}); err != nil {
		t.Fatalf("valid: %v", err)
	}
	err := Validate(in{Limit: 11})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "limit" {
		t.Fatalf("field = %v", err)
	}
}
