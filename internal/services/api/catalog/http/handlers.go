// Package http provides http transport for the catalog
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"govgraph/internal/modkit/httpkit"
	"govgraph/internal/services/api/catalog/domain"
	svc "govgraph/internal/services/api/catalog/service"
)

// Register mounts catalog endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// top level parent categories
	httpkit.Get(r, "/", h.parents)

	// expand selected categories into children and datasets
	httpkit.PostJSON[domain.FetchInput](r, "/", h.fetch)

	// yearly variants of one logical dataset
	httpkit.PostJSON[domain.DatasetYearsInput](r, "/datasets/years", h.datasetYears)

	httpkit.Get(r, "/datasets/{id}/root", h.datasetRoot)
	httpkit.Get(r, "/datasets/{id}/categories", h.datasetCategories)
	httpkit.Get(r, "/datasets/{id}/metadata", h.datasetMetadata)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /catalog Catalog catalogParents
// @Summary List top level categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} domain.Catalog "ok"
// @Router /catalog [get]
func (h *handlers) parents(r *stdhttp.Request) (any, error) {
	return h.svc.FetchCatalog(r.Context(), nil)
}

// swagger:route POST /catalog Catalog catalogFetch
// @Summary Expand categories into child categories and datasets
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.FetchInput true "Category ids"
// @Success 200 {object} domain.Catalog "ok"
// @Router /catalog [post]
func (h *handlers) fetch(r *stdhttp.Request, in domain.FetchInput) (any, error) {
	return h.svc.FetchCatalog(r.Context(), in.CategoryIDs)
}

// swagger:route POST /catalog/datasets/years Catalog catalogDatasetYears
// @Summary List available years for a logical dataset
// @Tags Catalog
// @Accept json
// @Produce json
// @Param payload body domain.DatasetYearsInput true "Dataset ids"
// @Success 200 {object} domain.DatasetYears "ok"
// @Router /catalog/datasets/years [post]
func (h *handlers) datasetYears(r *stdhttp.Request, in domain.DatasetYearsInput) (any, error) {
	return h.svc.DatasetYears(r.Context(), in.DatasetIDs)
}

// swagger:route GET /catalog/datasets/{id}/root Catalog catalogDatasetRoot
// @Summary Resolve the owning department or minister of a dataset
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset id"
// @Success 200 {object} domain.RootResult "ok"
// @Router /catalog/datasets/{id}/root [get]
func (h *handlers) datasetRoot(r *stdhttp.Request) (any, error) {
	return h.svc.DatasetRoot(r.Context(), chi.URLParam(r, "id"))
}

// swagger:route GET /catalog/datasets/{id}/categories Catalog catalogDatasetCategories
// @Summary List the category hierarchy above a dataset
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset id"
// @Success 200 {array} domain.Hop "ok"
// @Router /catalog/datasets/{id}/categories [get]
func (h *handlers) datasetCategories(r *stdhttp.Request) (any, error) {
	return h.svc.DatasetCategories(r.Context(), chi.URLParam(r, "id"))
}

// swagger:route GET /catalog/datasets/{id}/metadata Catalog catalogDatasetMetadata
// @Summary Dataset metadata with decoded values
// @Tags Catalog
// @Produce json
// @Param id path string true "Dataset id"
// @Success 200 {object} map[string]string "ok"
// @Router /catalog/datasets/{id}/metadata [get]
func (h *handlers) datasetMetadata(r *stdhttp.Request) (any, error) {
	return h.svc.DatasetMetadata(r.Context(), chi.URLParam(r, "id"))
}
