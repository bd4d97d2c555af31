// Package http provides http transport for people
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"govgraph/internal/modkit/httpkit"
	svc "govgraph/internal/services/api/people/service"
)

// Register mounts people endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/{id}/history", h.history)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /people/{id}/history People peopleHistory
// @Summary Ministry and presidency history for a person
// @Tags People
// @Produce json
// @Param id path string true "Person entity id"
// @Success 200 {object} domain.History "ok"
// @Router /people/{id}/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	return h.svc.PersonHistory(r.Context(), chi.URLParam(r, "id"))
}
