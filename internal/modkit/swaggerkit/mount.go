// Package swaggerkit serves the embedded OpenAPI document and the swagger UI under /api/docs
package swaggerkit

import (
	"net/http"
	"sync"

	"chimera/internal/platform/logger"
	phttp "chimera/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves /api/docs when enabled, titleSuffix is appended to the document title
func Mount(r phttp.Router, enabled bool, titleSuffix string) {
	if !enabled {
		return
	}
	doc := sync.OnceValues(func() ([]byte, error) { return render(source(), titleSuffix) })

	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", func(w http.ResponseWriter, req *http.Request) {
		body, err := doc()
		if err != nil {
			logger.C(req.Context()).Error().Err(err).Msg("openapi document unreadable")
			http.Error(w, "openapi document parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	})
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
