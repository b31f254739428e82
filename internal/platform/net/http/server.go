package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server owns the chi mux and the listener serving it
type Server struct {
	mux   *chi.Mux
	srv   *stdhttp.Server
	grace time.Duration
}

// NewServer reads API_PORT, API_READ_HEADER_TIMEOUT and API_SHUTDOWN_GRACE under cfg
// each opt sees the mux before any route is mounted
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{
		mux:   mux,
		grace: cfg.MayDuration("API_SHUTDOWN_GRACE", 20*time.Second),
		srv: &stdhttp.Server{
			Addr:              cfg.MayString("API_PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: cfg.MayDuration("API_READ_HEADER_TIMEOUT", 10*time.Second),
		},
	}
}

// Router is the mux behind the Router facade
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until the listener fails or ctx ends
// on cancellation in flight requests get the shutdown grace to finish
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.srv.Addr).Msg("listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			err = nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Dur("grace", s.grace).Msg("draining")
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
	defer cancel()
	if err := s.Shutdown(sctx); err != nil {
		return err
	}
	<-errc
	return nil
}

// Shutdown stops accepting connections and waits for handlers up to ctx
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
