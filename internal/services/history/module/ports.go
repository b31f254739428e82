package module

import (
	"context"

	analysisdom "chimera/internal/services/analysis/domain"
	historydom "chimera/internal/services/history/domain"
	historysvc "chimera/internal/services/history/service"
)

// Ports is the history port set
// Recorder plugs into the analysis module
type Ports struct {
	History  historydom.ServicePort
	Recorder analysisdom.Recorder
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Recorder adapts a history service to the analysis Recorder port
func Recorder(svc historysvc.Service) analysisdom.Recorder { return recorder{svc: svc} }

type recorder struct{ svc historysvc.Service }

// Record implements the analysis Recorder interface
func (a recorder) Record(ctx context.Context, rec analysisdom.Record) error {
	return a.svc.Record(ctx, historydom.Entry{
		ID:                   rec.ID,
		CreatedAt:            rec.CreatedAt,
		TextHash:             rec.TextHash,
		CharCount:            rec.CharCount,
		PlagiarismRate:       rec.PlagiarismRate,
		AIProbability:        rec.AIProbability,
		AuthenticityScore:    rec.AuthenticityScore,
		ManipulationDetected: rec.ManipulationDetected,
		Message:              rec.Message,
		Degraded:             rec.Degraded,
	})
}
