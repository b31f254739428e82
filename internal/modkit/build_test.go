package modkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/go-chi/chi/v5"

	"chimera/internal/modkit/httpkit"
	phttp "chimera/internal/platform/net/http"
	kit "chimera/internal/platform/testkit"
)

// trace appends name to the X-Trace header on the way in
func trace(name string) httpkit.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Trace", name)
			next.ServeHTTP(w, r)
		})
	}
}

func text(s string) httpkit.Handler {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, s) }
}

type recorderPorts struct{ Limit int }

func TestBuild_OptionsOverrideDefaults(t *testing.T) {
	defaults := []Option{WithName("history"), WithPrefix("/history"), WithMiddlewares(trace("default"))}
	mws := httpkit.Middlewares{trace("a")}

	b := Build(defaults,
		WithPrefix("/v2/history"),
		WithMiddlewares(mws...),
		WithPorts(recorderPorts{Limit: 3}),
	)

	if b.Name != "history" || b.Prefix != "/v2/history" {
		t.Fatalf("name/prefix = %q %q", b.Name, b.Prefix)
	}
	if p, ok := b.Ports.(recorderPorts); !ok || p.Limit != 3 {
		t.Fatalf("ports = %#v", b.Ports)
	}
	if len(b.Mw) != 2 {
		t.Fatalf("middleware = %d, want default then option", len(b.Mw))
	}
	if len(defaults) != 3 {
		t.Fatal("defaults slice grew")
	}
	mws[0] = nil
	if b.Mw[1] == nil {
		t.Fatal("Built shares the caller's middleware slice")
	}
}

func TestBase_MountRoutes(t *testing.T) {
	b := Build([]Option{WithName("history"), WithPrefix("history/")},
		WithMiddlewares(trace("module")),
		WithSubrouter(func(r httpkit.Router) httpkit.Router {
			r.Use(trace("sub"))
			return r
		}),
		WithRegister(func(r httpkit.Router) { r.Get("/extra", text("extra")) }),
	)
	m := b.Base(func(r httpkit.Router) { r.Get("/{id}", text("entry")) })

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	tests := []struct {
		path, body string
	}{
		{"/history/a-1", "entry"},
		{"/history/extra", "extra"},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if rec.Code != 200 || rec.Body.String() != tc.body {
			t.Fatalf("%s: %d %q", tc.path, rec.Code, rec.Body.String())
		}
		if got := rec.Header().Values("X-Trace"); !slices.Equal(got, []string{"module", "sub"}) {
			t.Fatalf("%s: middleware order = %v", tc.path, got)
		}
	}

	if m.Name() != "history" || m.Prefix() != "/history" || len(m.Middlewares()) != 1 {
		t.Fatalf("accessors = %q %q %d", m.Name(), m.Prefix(), len(m.Middlewares()))
	}
}

func TestBase_Unnamed(t *testing.T) {
	m := Build(nil).Base(nil)
	kit.MustPanic(t, func() { _ = m.Name() })
	kit.MustPanic(t, func() { _ = m.Prefix() })
	kit.MustPanic(t, func() { m.MountRoutes(phttp.AdaptChi(chi.NewRouter())) })
}
