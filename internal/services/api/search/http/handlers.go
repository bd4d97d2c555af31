// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"govgraph/internal/modkit/httpkit"
	"govgraph/internal/services/api/search/domain"
	svc "govgraph/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Input](r, "/", h.search)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /search Search unifiedSearch
// @Summary Unified multi type entity search
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.Input true "Search request"
// @Success 200 {object} domain.Output "ok"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.Input) (any, error) {
	return h.svc.UnifiedSearch(r.Context(), in)
}
