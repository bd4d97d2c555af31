// Package domain holds DTOs for catalog http and service contracts
package domain

// Entry groups distinct upstream entities that decode to the same display
// name. IDs is sorted for stable output
type Entry struct {
	Name string   `json:"name" example:"Population"`
	IDs  []string `json:"ids"`
}

// Catalog is the category/dataset listing
type Catalog struct {
	Categories []Entry `json:"categories"`
	Datasets   []Entry `json:"datasets"`
}

// FetchInput selects the categories to expand. An empty list returns the
// top level parent categories instead
type FetchInput struct {
	CategoryIDs []string `json:"category_ids,omitempty" validate:"omitempty,dive,min=1"`
}

// DatasetYearsInput names the yearly variants of one logical dataset
type DatasetYearsInput struct {
	DatasetIDs []string `json:"dataset_ids" validate:"required,min=1,dive,min=1"`
}

// DatasetYear pairs a dataset id with its publication year
type DatasetYear struct {
	DatasetID string `json:"datasetId"`
	Year      string `json:"year" example:"2020"`
}

// DatasetYears is the available-years listing for a logical dataset
type DatasetYears struct {
	Name  string        `json:"name" example:"Population"`
	Years []DatasetYear `json:"years"`
}

// RootResult is the owning department or minister of a dataset
// Detail is set instead of the other fields when the dataset has no
// resolvable root
type RootResult struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"type,omitempty" example:"department"`
	Detail string `json:"detail,omitempty"`
}

// Hop is one entity on the upward walk from a dataset to its root
type Hop struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	KindMajor string `json:"kindMajor"`
	KindMinor string `json:"kindMinor"`
}
