// Package http provides http transport for analysis
package http

import (
	stdhttp "net/http"

	"chimera/internal/modkit/httpkit"
	"chimera/internal/services/analysis/domain"
)

// Register mounts analysis endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
	httpkit.Get(r, "/calibration", h.calibration)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /analysis/analyze Analysis analysisAnalyze
// @Summary Analyze a text for plagiarism, AI likelihood and authenticity
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Submission"
// @Success 200 {object} domain.Report "ok"
// @Failure 400 {object} httpkit.Envelope "empty or oversized text"
// @Router /analysis/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

// swagger:route GET /analysis/calibration Analysis analysisCalibration
// @Summary Active scoring thresholds and weights
// @Tags Analysis
// @Produce json
// @Success 200 {object} calibration.Params "ok"
// @Router /analysis/calibration [get]
func (h *handlers) calibration(_ *stdhttp.Request) (any, error) {
	return h.svc.Calibration(), nil
}
