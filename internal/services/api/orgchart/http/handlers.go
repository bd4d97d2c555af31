// Package http provides http transport for the orgchart
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"govgraph/internal/modkit/httpkit"
	svc "govgraph/internal/services/api/orgchart/service"
)

// Register mounts orgchart endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/presidents/{id}/portfolios", h.portfolios)
	httpkit.Get(r, "/portfolios/{id}/departments", h.departments)
	httpkit.Get(r, "/prime-minister", h.primeMinister)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /orgchart/presidents/{id}/portfolios OrgChart orgchartPortfolios
// @Summary Active portfolios for a president at a date
// @Tags OrgChart
// @Produce json
// @Param id path string true "President entity id"
// @Param date query string true "Query date YYYY-MM-DD"
// @Success 200 {object} domain.PortfolioList "ok"
// @Router /orgchart/presidents/{id}/portfolios [get]
func (h *handlers) portfolios(r *stdhttp.Request) (any, error) {
	return h.svc.ActivePortfolios(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
}

// swagger:route GET /orgchart/portfolios/{id}/departments OrgChart orgchartDepartments
// @Summary Departments under a portfolio at a date
// @Tags OrgChart
// @Produce json
// @Param id path string true "Portfolio entity id"
// @Param date query string true "Query date YYYY-MM-DD"
// @Success 200 {object} domain.DepartmentList "ok"
// @Router /orgchart/portfolios/{id}/departments [get]
func (h *handlers) departments(r *stdhttp.Request) (any, error) {
	return h.svc.Departments(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("date"))
}

// swagger:route GET /orgchart/prime-minister OrgChart orgchartPrimeMinister
// @Summary Prime minister at a date
// @Tags OrgChart
// @Produce json
// @Param date query string true "Query date YYYY-MM-DD"
// @Success 200 {object} domain.PrimeMinister "ok"
// @Router /orgchart/prime-minister [get]
func (h *handlers) primeMinister(r *stdhttp.Request) (any, error) {
	return h.svc.PrimeMinister(r.Context(), r.URL.Query().Get("date"))
}
