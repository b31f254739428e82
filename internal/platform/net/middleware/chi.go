// Package middleware holds the HTTP middleware the API stacks, chi types stay in here
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the stdlib decorator shape every constructor returns
type Middleware = func(http.Handler) http.Handler

// chi built-ins, exposed without their package
var (
	RequestID       Middleware = chimw.RequestID
	RealIP          Middleware = chimw.RealIP
	NoCache         Middleware = chimw.NoCache
	RedirectSlashes Middleware = chimw.RedirectSlashes
	StripSlashes    Middleware = chimw.StripSlashes
)

// Timeout cancels the request context after d, a handler still running then answers 504
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// Compress gzips or deflates responses, level is a compress/flate level
func Compress(level int) Middleware { return chimw.NewCompressor(level).Handler }

// CORS allows the given origins, none means any origin
// the API is read and analyse only, so GET and POST are all it needs
func CORS(origins ...string) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
