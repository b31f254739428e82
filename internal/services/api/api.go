// Package api provides the HTTP API for the application
package api

import (
	"time"

	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"
	phttp "chimera/internal/platform/net/http"
	"chimera/internal/platform/net/middleware"
	"chimera/internal/platform/store"

	"chimera/internal/modkit"
	"chimera/internal/modkit/httpkit"
	"chimera/internal/modkit/module"
	"chimera/internal/modkit/swaggerkit"

	metamod "chimera/internal/services/api/meta/module"
	analysismod "chimera/internal/services/analysis/module"
	historymod "chimera/internal/services/history/module"
)

// history reads are single row lookups
const historyTimeout = 5 * time.Second

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	DocsSuffix     string
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Lite = opt.Store.Lite
	}

	// ports registered by an earlier Mount in the same process must not leak in
	module.Reset()
	mods := []module.Module{metamod.New(deps)}

	// history is optional, when present it owns the Recorder the analysis module writes to
	var analysisOpts []modkit.Option
	if historymod.FromConfig(deps.Cfg).Enabled() {
		history := historymod.New(deps, modkit.WithMiddlewares(middleware.Timeout(historyTimeout)))
		module.Register(history.Name(), module.MustPortsOf[historymod.Ports](history))
		mods = append(mods, history)
	} else if opt.Logger != nil {
		opt.Logger.Info().Msg("history disabled, analyses are not recorded")
	}
	if hp, ok := module.PortsAs[historymod.Ports]("history"); ok {
		analysisOpts = append(analysisOpts, modkit.WithPorts(analysismod.Ports{Recorder: hp.Recorder}))
	}
	mods = append(mods, analysismod.New(deps, analysisOpts...))

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger, opt.DocsSuffix)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
