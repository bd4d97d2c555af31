// Package service contains search workflows
package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/core/namecodec"
	"govgraph/internal/core/temporal"
	perr "govgraph/internal/platform/errors"
	"govgraph/internal/platform/logger"
	"govgraph/internal/services/api/search/domain"
)

// Searchable entity types in presentation order
const (
	TypeDepartment      = "department"
	TypeStateMinister   = "stateMinister"
	TypeCabinetMinister = "cabinetMinister"
	TypeDataset         = "dataset"
	TypePerson          = "person"
)

// kindFor maps each searchable type onto its upstream kind pair
var kindFor = map[string]opengin.Kind{
	TypeDepartment:      {Major: opengin.KindMajorOrganisation, Minor: opengin.KindMinorDepartment},
	TypeStateMinister:   {Major: opengin.KindMajorOrganisation, Minor: opengin.KindMinorStateMinister},
	TypeCabinetMinister: {Major: opengin.KindMajorOrganisation, Minor: opengin.KindMinorCabinetMinister},
	TypeDataset:         {Major: opengin.KindMajorData, Minor: opengin.KindMinorDataset},
	TypePerson:          {Major: opengin.KindMajorPerson, Minor: opengin.KindMinorPerson},
}

// allTypes is the default search scope
var allTypes = []string{TypeDepartment, TypeStateMinister, TypeCabinetMinister, TypeDataset, TypePerson}

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the search service
type Svc struct {
	Graph opengin.Port
}

// New constructs a search service
func New(graph opengin.Port) *Svc {
	if graph == nil {
		panic("search.Service requires a non nil graph port")
	}
	return &Svc{Graph: graph}
}

// UnifiedSearch fans out one kind scoped entity search per requested
// type, scores the decoded names against the query and merges the
// branches. A failing branch is logged and dropped, never fatal
func (s *Svc) UnifiedSearch(ctx context.Context, in domain.Input) (domain.Output, error) {
	query := strings.TrimSpace(in.Query)
	if len(query) < 2 {
		return domain.Output{}, perr.InvalidArgf("query must be at least 2 characters")
	}
	types := normalizeTypes(in.EntityTypes)
	asOfYear := temporal.ExtractYear(in.AsOfDate)

	slots := make([][]domain.Hit, len(types))
	wg := sync.WaitGroup{}
	for i := range types {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hits, err := s.searchType(ctx, types[i], query, asOfYear)
			if err != nil {
				logger.C(ctx).Warn().Err(err).Str("entity_type", types[i]).Msg("search branch dropped")
				return
			}
			slots[i] = hits
		}(i)
	}
	wg.Wait()

	results := make([]domain.Hit, 0, 16)
	for _, hits := range slots {
		results = append(results, hits...)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].Name < results[j].Name
	})
	if in.Limit > 0 && len(results) > in.Limit {
		results = results[:in.Limit]
	}
	return domain.Output{
		Query:    query,
		AsOfDate: in.AsOfDate,
		Total:    len(results),
		Results:  results,
	}, nil
}

// searchType runs one kind scoped search. NotFound means no hits
func (s *Svc) searchType(ctx context.Context, typ, query string, asOfYear int) ([]domain.Hit, error) {
	kind := kindFor[typ]
	ents, err := s.Graph.SearchEntities(ctx, opengin.EntityFilter{Name: query, Kind: &kind})
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	hits := make([]domain.Hit, 0, len(ents))
	for _, e := range ents {
		// only entities that existed as of the query date are eligible
		if temporal.ExtractYear(e.Created) > asOfYear {
			continue
		}
		decoded := namecodec.Decode(e.Name)
		display := decoded
		if typ == TypeDataset {
			display = temporal.TitleCase(temporal.StripYearSuffix(decoded))
		}
		hits = append(hits, domain.Hit{
			ID:   e.ID,
			Name: display,
			Type: typ,
			// scored against the decoded name before display formatting
			MatchScore: temporal.MatchScore(query, decoded),
		})
	}
	return hits, nil
}

// normalizeTypes filters the requested types against the valid set,
// deduplicated in canonical order. Nothing valid means all types
func normalizeTypes(requested []string) []string {
	want := make(map[string]bool, len(requested))
	for _, t := range requested {
		if _, ok := kindFor[strings.TrimSpace(t)]; ok {
			want[strings.TrimSpace(t)] = true
		}
	}
	if len(want) == 0 {
		return allTypes
	}
	out := make([]string, 0, len(want))
	for _, t := range allTypes {
		if want[t] {
			out = append(out, t)
		}
	}
	return out
}
