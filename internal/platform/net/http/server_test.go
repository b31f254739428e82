package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"chimera/internal/platform/config"
	phttp "chimera/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	if got := phttp.NewServer(config.New().Prefix("T1_")).Addr(); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}
	t.Setenv("T2_API_PORT", ":8088")
	if got := phttp.NewServer(config.New().Prefix("T2_")).Addr(); got != ":8088" {
		t.Fatalf("addr = %q", got)
	}
}

func TestServer_GraceBoundsShutdown(t *testing.T) {
	t.Setenv("T3_API_PORT", "127.0.0.1:0")
	t.Setenv("T3_API_SHUTDOWN_GRACE", "50ms")
	srv := phttp.NewServer(config.New().Prefix("T3_"))

	ctx, cancel := context.WithCancel(context.Background())
	done := waitRun(ctx, srv)
	start := time.Now()
	cancel()
	assertStops(t, done)
	if time.Since(start) > time.Second {
		t.Fatal("idle server took too long to drain")
	}
}

func TestNewServer_OptionsSeeMux(t *testing.T) {
	var seen *chi.Mux
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) { seen = m })
	if seen == nil {
		t.Fatal("option not applied")
	}
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	seen.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("router and option mux differ: %d", rec.Code)
	}
}

// waitRun runs the server and returns its result channel
func waitRun(ctx context.Context, srv *phttp.Server) <-chan error {
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	return done
}

func TestServer_Run(t *testing.T) {
	t.Run("cancel drains", func(t *testing.T) {
		t.Setenv("API_PORT", "127.0.0.1:0")
		ctx, cancel := context.WithCancel(context.Background())
		done := waitRun(ctx, phttp.NewServer(config.New()))
		cancel()
		assertStops(t, done)
	})

	t.Run("shutdown maps ErrServerClosed", func(t *testing.T) {
		t.Setenv("API_PORT", "127.0.0.1:0")
		srv := phttp.NewServer(config.New())
		done := waitRun(context.Background(), srv)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Fatalf("Shutdown: %v", err)
		}
		assertStops(t, done)
	})

	t.Run("listen error", func(t *testing.T) {
		t.Setenv("API_PORT", "127.0.0.1:abc")
		if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
			t.Fatal("expected listen error")
		}
	})
}

func assertStops(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return")
	}
}
