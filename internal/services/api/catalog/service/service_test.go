package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/core/namecodec"
	perr "govgraph/internal/platform/errors"
)

// fakeGraph stubs the graph port with per-method hooks
type fakeGraph struct {
	search    func(opengin.EntityFilter) ([]opengin.Entity, error)
	relations func(string, opengin.RelationFilter) ([]opengin.Relation, error)
	metadata  func(string) (map[string]string, error)
}

func (f fakeGraph) SearchEntities(_ context.Context, flt opengin.EntityFilter) ([]opengin.Entity, error) {
	return f.search(flt)
}

func (f fakeGraph) Relations(_ context.Context, id string, flt opengin.RelationFilter) ([]opengin.Relation, error) {
	return f.relations(id, flt)
}

func (f fakeGraph) Metadata(_ context.Context, id string) (map[string]string, error) {
	return f.metadata(id)
}

func (f fakeGraph) Ping(context.Context) error { return nil }

// entityDir resolves EntityByID lookups from a fixed map
func entityDir(ents map[string]opengin.Entity) func(opengin.EntityFilter) ([]opengin.Entity, error) {
	return func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
		e, ok := ents[flt.ID]
		if !ok {
			return nil, perr.NotFoundf("no entity %s", flt.ID)
		}
		return []opengin.Entity{e}, nil
	}
}

func TestFetchCatalogEmptyInputGroupsParentsByName(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.Kind == nil || flt.Kind.Minor != opengin.KindMinorParentCategory {
				t.Fatalf("unexpected filter %+v", flt)
			}
			return []opengin.Entity{
				{ID: "c1", Name: namecodec.Encode("Economy")},
				{ID: "c2", Name: namecodec.Encode("Economy")},
				{ID: "c3", Name: namecodec.Encode("Health")},
			}, nil
		},
	}
	out, err := New(g).FetchCatalog(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(out.Categories) != 2 || len(out.Datasets) != 0 {
		t.Fatalf("got %d categories %d datasets", len(out.Categories), len(out.Datasets))
	}
	if out.Categories[0].Name != "Economy" || len(out.Categories[0].IDs) != 2 {
		t.Fatalf("identical names not merged: %+v", out.Categories[0])
	}
}

func TestFetchCatalogExpandsCategoriesAndDatasets(t *testing.T) {
	ents := map[string]opengin.Entity{
		"sub1": {ID: "sub1", Name: namecodec.Encode("Agriculture")},
		"ds20": {ID: "ds20", Name: namecodec.Encode("population-2020")},
		"ds21": {ID: "ds21", Name: namecodec.Encode("population-2021")},
	}
	g := fakeGraph{
		search: entityDir(ents),
		relations: func(id string, flt opengin.RelationFilter) ([]opengin.Relation, error) {
			if flt.Direction != opengin.DirectionOutgoing {
				t.Fatalf("want outgoing relations, got %q", flt.Direction)
			}
			switch flt.Name {
			case opengin.RelAsCategory:
				return []opengin.Relation{{RelatedEntityID: "sub1"}}, nil
			case opengin.RelIsAttribute:
				return []opengin.Relation{{RelatedEntityID: "ds20"}, {RelatedEntityID: "ds21"}}, nil
			}
			return nil, nil
		},
	}
	out, err := New(g).FetchCatalog(context.Background(), []string{"root"})
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(out.Categories) != 1 || out.Categories[0].Name != "Agriculture" {
		t.Fatalf("categories = %+v", out.Categories)
	}
	// yearly variants collapse into one title cased bucket
	if len(out.Datasets) != 1 || out.Datasets[0].Name != "Population" {
		t.Fatalf("datasets = %+v", out.Datasets)
	}
	if got := out.Datasets[0].IDs; len(got) != 2 || got[0] != "ds20" || got[1] != "ds21" {
		t.Fatalf("dataset ids = %v", got)
	}
}

func TestFetchCatalogFailsWholeCallOnEnrichmentError(t *testing.T) {
	g := fakeGraph{
		search: func(flt opengin.EntityFilter) ([]opengin.Entity, error) {
			if flt.ID == "bad" {
				return nil, perr.Unavailablef("store down")
			}
			return []opengin.Entity{{ID: flt.ID, Name: namecodec.Encode("ok")}}, nil
		},
		relations: func(id string, flt opengin.RelationFilter) ([]opengin.Relation, error) {
			if flt.Name == opengin.RelAsCategory {
				return []opengin.Relation{{RelatedEntityID: "good"}, {RelatedEntityID: "bad"}}, nil
			}
			return nil, nil
		},
	}
	_, err := New(g).FetchCatalog(context.Background(), []string{"root"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want Unavailable, got %v", err)
	}
}

func TestGrouperConcurrentInsertions(t *testing.T) {
	g := newGrouper()
	names := []string{"Alpha", "Beta", "Gamma"}

	wg := sync.WaitGroup{}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			g.add(names[i%3], fmt.Sprintf("id-%d", i))
		}(i)
	}
	wg.Wait()

	entries := g.entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// ten ids over three names: sizes 4, 3, 3 with no lost updates
	total := 0
	for _, e := range entries {
		total += len(e.IDs)
	}
	if total != 10 {
		t.Fatalf("got %d ids total, want 10", total)
	}
	if len(entries[0].IDs) != 4 {
		t.Fatalf("Alpha has %d ids, want 4", len(entries[0].IDs))
	}
}

func TestDatasetYears(t *testing.T) {
	ents := map[string]opengin.Entity{
		"d1": {ID: "d1", Name: namecodec.Encode("census-2021"), Created: "2021-03-01T00:00:00Z"},
		"d2": {ID: "d2", Name: namecodec.Encode("census-2019"), Created: "2019-03-01T00:00:00Z"},
		"d3": {ID: "d3", Name: namecodec.Encode("census")},
	}
	out, err := New(fakeGraph{search: entityDir(ents)}).DatasetYears(context.Background(), []string{"d1", "d2", "d3"})
	if err != nil {
		t.Fatalf("DatasetYears: %v", err)
	}
	if out.Name != "Census" {
		t.Fatalf("name = %q", out.Name)
	}
	if len(out.Years) != 3 || out.Years[0].Year != "2019" || out.Years[1].Year != "2021" || out.Years[2].Year != "Unknown" {
		t.Fatalf("years = %+v", out.Years)
	}

	if _, err := New(fakeGraph{}).DatasetYears(context.Background(), nil); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("empty input: want InvalidArgument, got %v", err)
	}
}

// walkGraph wires a linear dataset -> category chain ending at root
func walkGraph(t *testing.T, chain []opengin.Entity, attached bool) fakeGraph {
	t.Helper()
	ents := make(map[string]opengin.Entity, len(chain))
	parent := make(map[string]string, len(chain))
	for i, e := range chain {
		ents[e.ID] = e
		if i+1 < len(chain) {
			parent[e.ID] = chain[i+1].ID
		}
	}
	return fakeGraph{
		search: entityDir(ents),
		relations: func(id string, flt opengin.RelationFilter) ([]opengin.Relation, error) {
			switch flt.Name {
			case opengin.RelIsAttribute:
				if !attached {
					return nil, nil
				}
				return []opengin.Relation{{RelatedEntityID: chain[0].ID}}, nil
			case opengin.RelAsCategory:
				if p, ok := parent[id]; ok {
					return []opengin.Relation{{RelatedEntityID: p}}, nil
				}
				return nil, nil
			}
			return nil, nil
		},
	}
}

func TestDatasetRootFindsDepartment(t *testing.T) {
	g := walkGraph(t, []opengin.Entity{
		{ID: "cat", Name: namecodec.Encode("Crops"), Kind: opengin.Kind{Major: opengin.KindMajorCategory, Minor: opengin.KindMinorCategory}},
		{ID: "dep", Name: namecodec.Encode("Dept of Agriculture"), Kind: opengin.Kind{Major: opengin.KindMajorOrganisation, Minor: opengin.KindMinorDepartment}},
	}, true)

	out, err := New(g).DatasetRoot(context.Background(), "ds")
	if err != nil {
		t.Fatalf("DatasetRoot: %v", err)
	}
	if out.ID != "dep" || out.Type != opengin.KindMinorDepartment || out.Detail != "" {
		t.Fatalf("root = %+v", out)
	}
}

func TestDatasetRootSentinels(t *testing.T) {
	// zero incoming IS_ATTRIBUTE relations
	out, err := New(walkGraph(t, nil, false)).DatasetRoot(context.Background(), "ds")
	if err != nil {
		t.Fatalf("DatasetRoot: %v", err)
	}
	if out.Detail != "No relation found for dataset" {
		t.Fatalf("detail = %q", out.Detail)
	}

	// chain exhausts without hitting a department or minister
	g := walkGraph(t, []opengin.Entity{
		{ID: "c1", Name: namecodec.Encode("A"), Kind: opengin.Kind{Minor: opengin.KindMinorCategory}},
		{ID: "c2", Name: namecodec.Encode("B"), Kind: opengin.Kind{Minor: opengin.KindMinorCategory}},
	}, true)
	out, err = New(g).DatasetRoot(context.Background(), "ds")
	if err != nil {
		t.Fatalf("DatasetRoot: %v", err)
	}
	if out.Detail != "Dataset not found" {
		t.Fatalf("detail = %q", out.Detail)
	}
}

func TestDatasetRootDepthGuard(t *testing.T) {
	// two categories pointing at each other
	loop := fakeGraph{
		search: entityDir(map[string]opengin.Entity{
			"a": {ID: "a", Kind: opengin.Kind{Minor: opengin.KindMinorCategory}},
			"b": {ID: "b", Kind: opengin.Kind{Minor: opengin.KindMinorCategory}},
		}),
		relations: func(id string, flt opengin.RelationFilter) ([]opengin.Relation, error) {
			if flt.Name == opengin.RelIsAttribute {
				return []opengin.Relation{{RelatedEntityID: "a"}}, nil
			}
			if id == "a" {
				return []opengin.Relation{{RelatedEntityID: "b"}}, nil
			}
			return []opengin.Relation{{RelatedEntityID: "a"}}, nil
		},
	}
	_, err := New(loop).DatasetRoot(context.Background(), "ds")
	if !perr.IsCode(err, perr.ErrorCodeUnknown) {
		t.Fatalf("want internal error on cycle, got %v", err)
	}
}

func TestDatasetCategoriesCollectsEveryHop(t *testing.T) {
	g := walkGraph(t, []opengin.Entity{
		{ID: "c1", Name: namecodec.Encode("Crops"), Kind: opengin.Kind{Minor: opengin.KindMinorCategory}},
		{ID: "c2", Name: namecodec.Encode("Agriculture"), Kind: opengin.Kind{Minor: opengin.KindMinorParentCategory}},
		{ID: "dep", Name: namecodec.Encode("Dept of Agriculture"), Kind: opengin.Kind{Minor: opengin.KindMinorDepartment}},
	}, true)

	hops, err := New(g).DatasetCategories(context.Background(), "ds")
	if err != nil {
		t.Fatalf("DatasetCategories: %v", err)
	}
	if len(hops) != 3 || hops[0].ID != "c1" || hops[1].ID != "c2" || hops[2].ID != "dep" {
		t.Fatalf("hops = %+v", hops)
	}
	if hops[0].Name != "Crops" || hops[2].KindMinor != opengin.KindMinorDepartment {
		t.Fatalf("hop fields = %+v", hops)
	}
}

func TestDatasetMetadataDecodesValues(t *testing.T) {
	g := fakeGraph{
		metadata: func(id string) (map[string]string, error) {
			return map[string]string{
				"publisher": namecodec.Encode("Census Bureau"),
				"broken":    "not-encoded",
			}, nil
		},
	}
	out, err := New(g).DatasetMetadata(context.Background(), "ds")
	if err != nil {
		t.Fatalf("DatasetMetadata: %v", err)
	}
	if out["publisher"] != "Census Bureau" {
		t.Fatalf("publisher = %q", out["publisher"])
	}
	if out["broken"] != namecodec.Unknown {
		t.Fatalf("broken = %q", out["broken"])
	}
}
