// Package http is the transport layer shared by every module
// handlers return a Response and never touch the ResponseWriter
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "chimera/internal/platform/errors"
	pnet "chimera/internal/platform/net"
)

// Envelope wraps every JSON body the API writes
// Data is set on success, Code, Error and Field on failure
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// JSON encodes v without HTML escaping, highlighted text carries <mark> tags
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// Response is what a return-style handler produces
// a non-nil Err wins over Data and picks the status from its code
type Response struct {
	Status int
	Data   any
	Err    error
}

// OK is a 200 carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Data: data} }

// Error defers the status to the error's code
func Error(err error) Response { return Response{Err: err} }

// Handle adapts a return-style handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).Write(w, r) }
}

// Write renders the envelope and echoes the request id header
func (resp Response) Write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	env := Envelope{RequestID: pnet.RequestID(r.Context())}
	if env.RequestID != "" {
		w.Header().Set("X-Request-ID", env.RequestID)
	}

	switch {
	case resp.Err != nil:
		wire := perr.WireFrom(resp.Err)
		env.StatusCode = perr.HTTPStatus(resp.Err)
		env.Code, env.Error, env.Field = wire.Code, wire.Message, wire.Field
	case resp.Status == 0:
		env.StatusCode = stdhttp.StatusOK
		env.Data = resp.Data
	default:
		env.StatusCode = resp.Status
		env.Data = resp.Data
	}
	env.Status = stdhttp.StatusText(env.StatusCode)
	JSON(w, env.StatusCode, env)
}
