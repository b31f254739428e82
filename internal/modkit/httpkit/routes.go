package httpkit

import (
	"net/http"
	"strings"
)

type (
	// Middleware decorates a handler
	Middleware = func(http.Handler) http.Handler

	// Middlewares is a stack, outermost first
	Middlewares = []Middleware
)

// MountUnder routes prefix to a subrouter carrying mw, then hands it to mount
func MountUnder(r Router, prefix string, mw Middlewares, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI scopes mount under /api/{version}
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  analysis.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw Middlewares, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI pinned to v1
func MountAPIV1(r Router, mw Middlewares, mount func(Router)) { MountAPI(r, "v1", mw, mount) }

// Get mounts a bodiless handler behind the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// PostJSON mounts a handler whose body binds into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
