// Package http serves the liveness, readiness and build info endpoints under /meta
package http

import (
	"context"
	"net/http"
	"time"

	"chimera/internal/core/version"
	"chimera/internal/modkit/httpkit"
)

// Check is one readiness probe, a nil Ping reports skipped
type Check struct {
	Name string
	Ping func(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
	PingTimeout time.Duration // 2s when zero
	Now         func() time.Time
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.PingTimeout <= 0 {
		d.PingTimeout = 2 * time.Second
	}
	h := handlers(d)
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type handlers Deps

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"chimera-api"`
	Started string `json:"started" example:"2026-03-01T12:00:00Z"`
	Now     string `json:"now"     example:"2026-03-01T12:05:00Z"`
}

// ReadyCheck is the outcome of one Check: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"sqlite"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"database is locked"`
}

// ReadyResponse is ok unless some check failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-03-01T12:05:00Z"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"chimera-api"`
	Started string `json:"started" example:"2026-03-01T12:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Now     string `json:"now"     example:"2026-03-01T12:05:00Z"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: stamp(h.StartedAt),
		Now:     stamp(h.Now()),
	}, nil
}

// ready pings every check in turn under one shared deadline
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.PingTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(h.Checks))}
	for _, c := range h.Checks {
		rc := ReadyCheck{Name: c.Name, Status: "skipped"}
		if c.Ping != nil {
			rc.Status = "ok"
			if err := c.Ping(ctx); err != nil {
				rc.Status, rc.Error = "fail", err.Error()
				out.Status = "fail"
			}
		}
		out.Checks = append(out.Checks, rc)
	}
	out.Now = stamp(h.Now())
	return out, nil
}

func (h handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

func (h handlers) service(*http.Request) (any, error) {
	now := h.Now()
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: stamp(h.StartedAt),
		Uptime:  int64(now.Sub(h.StartedAt) / time.Second),
		Now:     stamp(now),
	}, nil
}
