package module

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	modkit "chimera/internal/modkit"
	"chimera/internal/modkit/repokit"
	phttp "chimera/internal/platform/net/http"
	"chimera/internal/platform/testkit"
)

// pingRunner is a store seam whose only working method is Ping
type pingRunner struct {
	repokit.TxRunner
	err error
}

func (p pingRunner) Ping(context.Context) error { return p.err }

func TestNew_ReadyReflectsStores(t *testing.T) {
	tests := []struct {
		name string
		deps modkit.Deps
		code int
		want []string
	}{
		{"no history store", modkit.Deps{}, http.StatusOK, []string{`"status":"ok"`, `"name":"pg","status":"skipped"`}},
		{"sqlite up", modkit.Deps{Lite: pingRunner{}}, http.StatusOK, []string{`"name":"sqlite","status":"ok"`}},
		{"pg down", modkit.Deps{PG: pingRunner{err: errors.New("refused")}}, http.StatusOK, []string{`"status":"fail"`, `refused`}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mux := chi.NewRouter()
			m := New(tc.deps)
			m.MountRoutes(phttp.AdaptChi(mux))

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/ready", nil))
			if rr.Code != tc.code {
				t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
			}
			testkit.MustContain(t, rr.Body.String(), tc.want...)
		})
	}
}

func TestNew_Identity(t *testing.T) {
	m := New(modkit.Deps{})
	if m.Name() != "meta" || m.Ports() != nil {
		t.Fatalf("name = %q ports = %v", m.Name(), m.Ports())
	}
	if got := m.(*Module).Prefix(); got != "/meta" {
		t.Fatalf("prefix = %q", got)
	}
}
