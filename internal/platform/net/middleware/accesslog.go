package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"chimera/internal/platform/logger"
)

// AccessLog writes one line per request through the request scoped logger
// 5xx logs at error, requests slower than slow at warn, slow <= 0 never warns
func AccessLog(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			lvl := zerolog.InfoLevel
			switch {
			case status >= http.StatusInternalServerError:
				lvl = zerolog.ErrorLevel
			case slow > 0 && elapsed >= slow:
				lvl = zerolog.WarnLevel
			}

			evt := logger.C(r.Context()).WithLevel(lvl).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed)
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				evt = evt.Str("route", rc.RoutePattern())
			}
			evt.Msg("request done")
		})
	}
}
