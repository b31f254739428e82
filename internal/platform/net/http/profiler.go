package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

// MountProfiler serves pprof under prefix, e.g. /debug/pprof/heap
// disabled is a no-op so callers can pass the config flag straight through
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	h := stdhttp.StripPrefix(prefix, mw.Profiler())
	r.Handle(prefix, h)
	r.Handle(prefix+"/*", h)
}
