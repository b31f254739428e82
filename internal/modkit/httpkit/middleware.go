package httpkit

import (
	"compress/flate"
	"time"

	"chimera/internal/platform/net/middleware"
)

const (
	// analyses run two external calls under their own budget, this only caps runaways
	requestTimeout = 30 * time.Second
	slowRequest    = 5 * time.Second
)

// CommonStack is the middleware every /api/v1 route runs behind, outermost first
// origins feeds CORS, none allows any origin
func CommonStack(origins ...string) Middlewares {
	return Middlewares{
		middleware.RequestID,
		middleware.RealIP,
		middleware.RecoverJSON,
		middleware.NoCache,
		middleware.AccessLog(slowRequest),
		middleware.CORS(origins...),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes,
		middleware.StripSlashes,
		middleware.Timeout(requestTimeout),
	}
}
