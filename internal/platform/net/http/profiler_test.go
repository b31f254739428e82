package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "chimera/internal/platform/net/http"
)

func TestMountProfiler(t *testing.T) {
	tests := []struct {
		name    string
		prefix  string
		enabled bool
		path    string
		want    int
	}{
		{"index", "/debug", true, "/debug/pprof/", http.StatusOK},
		{"cmdline", "/debug", true, "/debug/pprof/cmdline", http.StatusOK},
		{"prefix normalised", "debug/", true, "/debug/pprof/cmdline", http.StatusOK},
		{"disabled", "/debug", false, "/debug/pprof/", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := phttp.AdaptChi(chi.NewRouter())
			phttp.MountProfiler(r, tc.prefix, tc.enabled)

			rec := httptest.NewRecorder()
			r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.want {
				t.Fatalf("GET %s = %d, want %d", tc.path, rec.Code, tc.want)
			}
		})
	}
}
