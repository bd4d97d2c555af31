package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	FetchCatalog(ctx context.Context, categoryIDs []string) (Catalog, error)
	DatasetYears(ctx context.Context, datasetIDs []string) (DatasetYears, error)
	DatasetRoot(ctx context.Context, datasetID string) (RootResult, error)
	DatasetCategories(ctx context.Context, datasetID string) ([]Hop, error)
	DatasetMetadata(ctx context.Context, datasetID string) (map[string]string, error)
}
