package service

import (
	"context"
	"reflect"
	"testing"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/core/namecodec"
	perr "govgraph/internal/platform/errors"
	"govgraph/internal/services/api/search/domain"
)

type fakeGraph struct {
	search func(opengin.EntityFilter) ([]opengin.Entity, error)
}

func (f fakeGraph) SearchEntities(_ context.Context, flt opengin.EntityFilter) ([]opengin.Entity, error) {
	return f.search(flt)
}

func (f fakeGraph) Relations(context.Context, string, opengin.RelationFilter) ([]opengin.Relation, error) {
	return nil, nil
}

func (f fakeGraph) Metadata(context.Context, string) (map[string]string, error) {
	return nil, perr.NotFoundf("no metadata")
}

func (f fakeGraph) Ping(context.Context) error { return nil }

func TestUnifiedSearchValidatesQuery(t *testing.T) {
	s := New(fakeGraph{})
	for _, q := range []string{"", "a", "  a  "} {
		if _, err := s.UnifiedSearch(context.Background(), domain.Input{Query: q}); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Fatalf("query %q: want InvalidArgument, got %v", q, err)
		}
	}
}

func TestUnifiedSearchScoresAndSorts(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			switch flt.Kind.Minor {
			case opengin.KindMinorDepartment:
				return []opengin.Entity{
					{ID: "d1", Name: namecodec.Encode("Department of Health"), Created: "2001-01-01T00:00:00Z"},
					{ID: "d2", Name: namecodec.Encode("Health Ministry"), Created: "2005-01-01T00:00:00Z"},
				}, nil
			case opengin.KindMinorPerson:
				return []opengin.Entity{
					{ID: "p1", Name: namecodec.Encode("Health"), Created: "2010-01-01T00:00:00Z"},
				}, nil
			}
			return nil, perr.NotFoundf("no matches")
		},
	}
	out, err := New(g).UnifiedSearch(context.Background(), domain.Input{Query: "health", AsOfDate: "2023-01-01"})
	if err != nil {
		t.Fatalf("UnifiedSearch: %v", err)
	}
	if out.Total != 3 {
		t.Fatalf("total = %d", out.Total)
	}
	got := []string{out.Results[0].ID, out.Results[1].ID, out.Results[2].ID}
	// exact 1.0, prefix 0.8, contains 0.6
	if want := []string{"p1", "d2", "d1"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if out.Results[0].MatchScore != 1.0 || out.Results[1].MatchScore != 0.8 || out.Results[2].MatchScore != 0.6 {
		t.Fatalf("scores = %+v", out.Results)
	}
}

func TestUnifiedSearchAsOfDateFiltersByCreatedYear(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.Kind.Minor != opengin.KindMinorDepartment {
				return nil, perr.NotFoundf("no matches")
			}
			return []opengin.Entity{
				{ID: "old", Name: namecodec.Encode("Health Office"), Created: "1995-01-01T00:00:00Z"},
				{ID: "new", Name: namecodec.Encode("Health Agency"), Created: "2015-01-01T00:00:00Z"},
				{ID: "undated", Name: namecodec.Encode("Health Bureau")},
			}, nil
		},
	}
	out, err := New(g).UnifiedSearch(context.Background(), domain.Input{Query: "health", AsOfDate: "2000-06-01"})
	if err != nil {
		t.Fatalf("UnifiedSearch: %v", err)
	}
	if out.Total != 1 || out.Results[0].ID != "old" {
		t.Fatalf("results = %+v", out.Results)
	}
}

func TestUnifiedSearchDatasetDisplayFormatting(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.Kind.Minor != opengin.KindMinorDataset {
				return nil, perr.NotFoundf("no matches")
			}
			return []opengin.Entity{
				{ID: "ds", Name: namecodec.Encode("population-2020"), Created: "2020-01-01T00:00:00Z"},
			}, nil
		},
	}
	out, err := New(g).UnifiedSearch(context.Background(), domain.Input{
		Query:       "population",
		EntityTypes: []string{TypeDataset},
	})
	if err != nil {
		t.Fatalf("UnifiedSearch: %v", err)
	}
	hit := out.Results[0]
	if hit.Name != "Population" {
		t.Fatalf("display name = %q", hit.Name)
	}
	// scored against the raw decoded name, a prefix match
	if hit.MatchScore != 0.8 {
		t.Fatalf("score = %v", hit.MatchScore)
	}
}

func TestUnifiedSearchDropsFailingBranch(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.Kind.Minor == opengin.KindMinorPerson {
				return nil, perr.Unavailablef("store down")
			}
			if flt.Kind.Minor == opengin.KindMinorDepartment {
				return []opengin.Entity{{ID: "d1", Name: namecodec.Encode("Health"), Created: "2000-01-01T00:00:00Z"}}, nil
			}
			return nil, perr.NotFoundf("no matches")
		},
	}
	out, err := New(g).UnifiedSearch(context.Background(), domain.Input{Query: "health"})
	if err != nil {
		t.Fatalf("UnifiedSearch: %v", err)
	}
	if out.Total != 1 || out.Results[0].ID != "d1" {
		t.Fatalf("results = %+v", out.Results)
	}
}

func TestUnifiedSearchLimit(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.Kind.Minor != opengin.KindMinorDepartment {
				return nil, perr.NotFoundf("no matches")
			}
			return []opengin.Entity{
				{ID: "d1", Name: namecodec.Encode("Health"), Created: "2000-01-01T00:00:00Z"},
				{ID: "d2", Name: namecodec.Encode("Health Ministry"), Created: "2000-01-01T00:00:00Z"},
				{ID: "d3", Name: namecodec.Encode("Dept of Health"), Created: "2000-01-01T00:00:00Z"},
			}, nil
		},
	}
	out, err := New(g).UnifiedSearch(context.Background(), domain.Input{Query: "health", Limit: 2})
	if err != nil {
		t.Fatalf("UnifiedSearch: %v", err)
	}
	if out.Total != 2 || len(out.Results) != 2 {
		t.Fatalf("limit not applied: %+v", out)
	}
	if out.Results[0].ID != "d1" {
		t.Fatalf("best match first: %+v", out.Results)
	}
}

func TestNormalizeTypes(t *testing.T) {
	cases := []struct {
		in   []string
		want []string
	}{
		{nil, allTypes},
		{[]string{"bogus"}, allTypes},
		{[]string{"person", "dataset"}, []string{TypeDataset, TypePerson}},
		{[]string{" person ", "person"}, []string{TypePerson}},
	}
	for _, c := range cases {
		if got := normalizeTypes(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("normalizeTypes(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
