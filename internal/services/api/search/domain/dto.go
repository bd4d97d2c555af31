// Package domain holds DTOs for search http and service contracts
package domain

// Input is a unified search request
// Unknown entity types are ignored; an empty or fully unknown filter
// searches every type
type Input struct {
	Query       string   `json:"query" validate:"required,min=2" example:"health"`
	AsOfDate    string   `json:"as_of_date,omitempty" example:"2023-01-01"`
	Limit       int      `json:"limit,omitempty" validate:"omitempty,min=1"`
	EntityTypes []string `json:"entity_types,omitempty"`
}

// Hit is one scored search result
type Hit struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       string  `json:"type" example:"department"`
	MatchScore float64 `json:"match_score"`
}

// Output is the merged, scored search response
type Output struct {
	Query    string `json:"query"`
	AsOfDate string `json:"as_of_date,omitempty"`
	Total    int    `json:"total"`
	Results  []Hit  `json:"results"`
}
