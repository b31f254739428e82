package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler is the handler shape modules register
type Handler = func(http.ResponseWriter, *http.Request)

// Router is the routing surface modules mount against
type Router interface {
	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h http.Handler)
	Use(mw ...func(http.Handler) http.Handler)
	Route(prefix string, fn func(Router))

	// Mux serves everything registered so far
	Mux() http.Handler
}

// chiRouter backs Router with chi, root mux and subrouters alike
type chiRouter struct{ r chi.Router }

// AdaptChi wraps a chi mux as a Router
func AdaptChi(m *chi.Mux) Router { return chiRouter{r: m} }

func (c chiRouter) Get(p string, h Handler)  { c.r.Get(p, h) }
func (c chiRouter) Post(p string, h Handler) { c.r.Post(p, h) }

func (c chiRouter) Handle(p string, h http.Handler) { c.r.Handle(p, h) }

func (c chiRouter) Use(mw ...func(http.Handler) http.Handler) { c.r.Use(mw...) }

func (c chiRouter) Route(prefix string, fn func(Router)) {
	c.r.Route(prefix, func(sub chi.Router) { fn(chiRouter{r: sub}) })
}

func (c chiRouter) Mux() http.Handler { return c.r }
