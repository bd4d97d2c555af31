package module

import (
	"context"

	"govgraph/internal/services/api/catalog/domain"
	catsvc "govgraph/internal/services/api/catalog/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptCatalogPort struct{ svc catsvc.Service }

// FetchCatalog lists or expands catalog categories
func (a adaptCatalogPort) FetchCatalog(ctx context.Context, categoryIDs []string) (domain.Catalog, error) {
	return a.svc.FetchCatalog(ctx, categoryIDs)
}

// DatasetYears lists the publication years behind one logical dataset
func (a adaptCatalogPort) DatasetYears(ctx context.Context, datasetIDs []string) (domain.DatasetYears, error) {
	return a.svc.DatasetYears(ctx, datasetIDs)
}

// DatasetRoot resolves the owning department or minister of a dataset
func (a adaptCatalogPort) DatasetRoot(ctx context.Context, datasetID string) (domain.RootResult, error) {
	return a.svc.DatasetRoot(ctx, datasetID)
}

// DatasetCategories lists the category hierarchy above a dataset
func (a adaptCatalogPort) DatasetCategories(ctx context.Context, datasetID string) ([]domain.Hop, error) {
	return a.svc.DatasetCategories(ctx, datasetID)
}

// DatasetMetadata returns decoded dataset metadata
func (a adaptCatalogPort) DatasetMetadata(ctx context.Context, datasetID string) (map[string]string, error) {
	return a.svc.DatasetMetadata(ctx, datasetID)
}
