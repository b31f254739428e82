package module

import (
	"context"

	"chimera/internal/core/calibration"
	"chimera/internal/services/analysis/domain"
	analysissvc "chimera/internal/services/analysis/service"
)

// Ports declares the optional injected ports for this module
type Ports struct {
	Recorder domain.Recorder
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptAnalysisPort adapts the analysis service to the domain port interface
type adaptAnalysisPort struct{ svc analysissvc.Service }

// Analyze implements the domain ServicePort interface
func (a adaptAnalysisPort) Analyze(ctx context.Context, in domain.AnalyzeInput) (domain.Report, error) {
	return a.svc.Analyze(ctx, in)
}

// Calibration implements the domain ServicePort interface
func (a adaptAnalysisPort) Calibration() calibration.Params { return a.svc.Calibration() }
