// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "chimera/internal/platform/net/http"
	"chimera/internal/platform/net/http/bind"
)

type (
	// Envelope is the transport envelope type
	Envelope = phttp.Envelope

	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// JSON binds and validates the body into T before calling fn
// bind failures map to 400 envelopes
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		in, err := bind.JSON[T](r)
		if err != nil {
			return phttp.Error(err)
		}
		return respond(fn(r, in))
	})
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		return respond(fn(r))
	})
}

// respond wraps a plain value in a 200, a Response passes through untouched
func respond(out any, err error) Response {
	if err != nil {
		return phttp.Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return phttp.OK(out)
}
