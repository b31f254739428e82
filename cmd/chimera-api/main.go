// @title         Chimera API
// @version       0.1.0
// @description   Plagiarism, AI likelihood and authenticity heuristics for student writing

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chimera/internal/modkit/repokit"
	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"
	phttp "chimera/internal/platform/net/http"
	"chimera/internal/platform/store"

	"chimera/internal/services/api"
	historymod "chimera/internal/services/history/module"
)

func main() {
	// a missing .env is fine, real env wins
	_ = godotenv.Load()

	root := config.New().Prefix("CHIMERA_")
	apiCfg := root.Prefix("API_")

	l := logger.Get()

	// only the history backend needs a store
	st, err := store.Open(
		context.Background(),
		historymod.FromConfig(root).StoreConfig("chimera-api"),
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	// reads CHIMERA_API_PORT
	srv := phttp.NewServer(root)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			DocsSuffix:     apiCfg.MayString("DOCS_TITLE_SUFFIX", ""),
		},
	)

	// SIGINT or SIGTERM drains in flight analyses before the store closes
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l.Info().Str("addr", srv.Addr()).Msg("chimera-api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
