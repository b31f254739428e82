// Package http provides http transport for analysis history
package http

import (
	stdhttp "net/http"

	"chimera/internal/modkit/httpkit"
	"chimera/internal/services/history/domain"
)

// Register mounts history endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.recent)
	httpkit.Get(r, "/{id}", h.get)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /history History historyRecent
// @Summary Recent analyses, scores only
// @Tags History
// @Produce json
// @Param limit query int false "max rows (1-200)"
// @Param text_hash query string false "sha256 of the normalized text"
// @Success 200 {array} domain.Entry "ok"
// @Router /history [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 0)
	if err != nil {
		return nil, err
	}
	in := domain.RecentInput{Limit: limit, TextHash: httpkit.Query(r, "text_hash")}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Recent(r.Context(), in)
}

// swagger:route GET /history/{id} History historyGet
// @Summary One recorded analysis
// @Tags History
// @Produce json
// @Param id path string true "analysis id"
// @Success 200 {object} domain.Entry "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /history/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Param(r, "id"))
}
