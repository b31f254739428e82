// Package module wires analysis into the API using modkit
package module

import (
	"chimera/internal/adapters/detector"
	"chimera/internal/core/calibration"
	"chimera/internal/core/lexicon"
	modkit "chimera/internal/modkit"
	"chimera/internal/modkit/httpkit"
	analysishttp "chimera/internal/services/analysis/http"
	analysissvc "chimera/internal/services/analysis/service"
)

// Module serves /analysis and exports the analysis port
type Module struct {
	modkit.Base
	ports any
}

// New constructs the analysis module from config
// a broken calibration file is a startup error and panics
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("analysis"),
		modkit.WithPrefix("/analysis"),
	}, opts...)

	injected, _ := b.Ports.(Ports)
	svc := NewService(FromConfig(deps.Cfg), injected)

	return &Module{
		Base:  b.Base(func(r httpkit.Router) { analysishttp.Register(r, svc) }),
		ports: adaptAnalysisPort{svc: svc},
	}
}

// NewService is BuildService for startup paths where a bad calibration file is fatal
func NewService(cfg Options, p Ports) *analysissvc.Svc {
	svc, err := BuildService(cfg, p)
	if err != nil {
		panic(err)
	}
	return svc
}

// BuildService builds the analysis service with its remote collaborators
// shared by the API module and the CLI
func BuildService(cfg Options, p Ports) (*analysissvc.Svc, error) {
	params, err := calibration.Load(cfg.CalibrationFile)
	if err != nil {
		return nil, err
	}

	c := analysissvc.Collaborators{Recorder: p.Recorder}
	if cfg.DetectorURL != "" {
		c.Detector = detector.NewClient(detector.Options{
			URL:     cfg.DetectorURL,
			APIKey:  cfg.DetectorKey,
			Timeout: cfg.ExternalTimeout,
			RPS:     cfg.DetectorRPS,
		})
	}
	if cfg.SearchURL != "" {
		c.Search = detector.NewClient(detector.Options{
			URL:       cfg.SearchURL,
			APIKey:    cfg.SearchKey,
			UserAgent: "chimera-search",
			Timeout:   cfg.ExternalTimeout,
			RPS:       cfg.DetectorRPS,
		})
	}

	return analysissvc.New(lexicon.MustLoad(), analysissvc.Options{
		MaxChars:        cfg.MaxChars,
		ExternalTimeout: cfg.ExternalTimeout,
		Params:          params,
	}, c), nil
}
