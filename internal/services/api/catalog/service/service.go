// Package service contains catalog workflows
package service

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/core/namecodec"
	"govgraph/internal/core/temporal"
	perr "govgraph/internal/platform/errors"
	"govgraph/internal/platform/logger"
	"govgraph/internal/services/api/catalog/domain"
)

// maxHops bounds the upward category walk so a cyclic upstream graph
// cannot loop forever
const maxHops = 50

// fanout caps concurrent upstream calls per aggregation phase
const fanout = 16

// Detail sentinels for DatasetRoot
const (
	detailNoRelation = "No relation found for dataset"
	detailNoRoot     = "Dataset not found"
)

// Service defines the catalog service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the catalog service
type Svc struct {
	Graph opengin.Port
}

// New constructs a catalog service
func New(graph opengin.Port) *Svc {
	if graph == nil {
		panic("catalog.Service requires a non nil graph port")
	}
	return &Svc{Graph: graph}
}

// fail applies the boundary contract for unrecovered errors: classified
// upstream outcomes pass through, anything else is logged and wrapped
func (s *Svc) fail(ctx context.Context, op string, err error) error {
	if perr.IsTerminal(err) || perr.IsRetryable(err) {
		return err
	}
	logger.C(ctx).Error().Err(err).Str("op", op).Msg("catalog aggregation failed")
	return perr.Wrap(err, perr.ErrorCodeUnknown, "catalog aggregation failed")
}

// grouper is the name to id-set accumulator shared by the concurrent
// enrichment branches of one call. The lock is scoped to that call and
// is never held across an upstream request
type grouper struct {
	mu  sync.Mutex
	ids map[string]map[string]struct{}
}

func newGrouper() *grouper {
	return &grouper{ids: make(map[string]map[string]struct{})}
}

func (g *grouper) add(name, id string) {
	g.mu.Lock()
	set, ok := g.ids[name]
	if !ok {
		set = make(map[string]struct{})
		g.ids[name] = set
	}
	set[id] = struct{}{}
	g.mu.Unlock()
}

// entries renders the grouped map with sorted ids and stable entry order
func (g *grouper) entries() []domain.Entry {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]domain.Entry, 0, len(g.ids))
	for name, set := range g.ids {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out = append(out, domain.Entry{Name: name, IDs: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FetchCatalog lists top level parent categories when no ids are given,
// otherwise expands the given categories into child categories and datasets
func (s *Svc) FetchCatalog(ctx context.Context, categoryIDs []string) (domain.Catalog, error) {
	if len(categoryIDs) == 0 {
		return s.parentCategories(ctx)
	}

	catRels, dsRels, err := s.childRelations(ctx, categoryIDs)
	if err != nil {
		return domain.Catalog{}, s.fail(ctx, "catalog.relations", err)
	}

	type job struct {
		rel     opengin.Relation
		dataset bool
	}
	jobs := make([]job, 0, len(catRels)+len(dsRels))
	for _, r := range catRels {
		jobs = append(jobs, job{rel: r})
	}
	for _, r := range dsRels {
		jobs = append(jobs, job{rel: r, dataset: true})
	}

	cats := newGrouper()
	datasets := newGrouper()
	errs := make([]error, len(jobs))

	sem := make(chan struct{}, fanout)
	wg := sync.WaitGroup{}
	for i := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			j := jobs[i]
			ent, err := opengin.EntityByID(ctx, s.Graph, j.rel.RelatedEntityID)
			if err != nil {
				errs[i] = err
				return
			}
			name := namecodec.Decode(ent.Name)
			if j.dataset {
				// yearly variants like population-2020 merge into one bucket
				datasets.add(temporal.TitleCase(temporal.StripYearSuffix(name)), ent.ID)
				return
			}
			cats.add(name, ent.ID)
		}(i)
	}
	wg.Wait()

	// all or nothing: one failed enrichment fails the call
	for _, err := range errs {
		if err != nil {
			return domain.Catalog{}, s.fail(ctx, "catalog.enrich", err)
		}
	}
	return domain.Catalog{Categories: cats.entries(), Datasets: datasets.entries()}, nil
}

// parentCategories lists the top level categories by kind search
func (s *Svc) parentCategories(ctx context.Context) (domain.Catalog, error) {
	ents, err := s.Graph.SearchEntities(ctx, opengin.EntityFilter{
		Kind: &opengin.Kind{Major: opengin.KindMajorCategory, Minor: opengin.KindMinorParentCategory},
	})
	if err != nil {
		return domain.Catalog{}, s.fail(ctx, "catalog.parents", err)
	}
	g := newGrouper()
	for _, e := range ents {
		g.add(namecodec.Decode(e.Name), e.ID)
	}
	return domain.Catalog{Categories: g.entries(), Datasets: []domain.Entry{}}, nil
}

// childRelations fans out over the input ids fetching outgoing AS_CATEGORY
// and IS_ATTRIBUTE relations, both edge kinds in parallel
func (s *Svc) childRelations(ctx context.Context, ids []string) (catRels, dsRels []opengin.Relation, err error) {
	catSlots := make([][]opengin.Relation, len(ids))
	dsSlots := make([][]opengin.Relation, len(ids))
	errs := make([]error, 2*len(ids))

	sem := make(chan struct{}, fanout)
	wg := sync.WaitGroup{}
	fetch := func(slot *[]opengin.Relation, errSlot *error, id, edge string) {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer func() { <-sem; wg.Done() }()
			rels, err := s.Graph.Relations(ctx, id, opengin.RelationFilter{
				Name:      edge,
				Direction: opengin.DirectionOutgoing,
			})
			if err != nil {
				*errSlot = err
				return
			}
			*slot = rels
		}()
	}
	for i, id := range ids {
		fetch(&catSlots[i], &errs[2*i], id, opengin.RelAsCategory)
		fetch(&dsSlots[i], &errs[2*i+1], id, opengin.RelIsAttribute)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	for i := range ids {
		catRels = append(catRels, catSlots[i]...)
		dsRels = append(dsRels, dsSlots[i]...)
	}
	return catRels, dsRels, nil
}

// DatasetYears lists the publication years behind one logical dataset.
// The display name comes from the first id; the ids are assumed to be
// yearly variants of the same dataset
func (s *Svc) DatasetYears(ctx context.Context, datasetIDs []string) (domain.DatasetYears, error) {
	if len(datasetIDs) == 0 {
		return domain.DatasetYears{}, perr.InvalidArgf("dataset_ids must not be empty")
	}

	ents := make([]opengin.Entity, len(datasetIDs))
	errs := make([]error, len(datasetIDs))
	sem := make(chan struct{}, fanout)
	wg := sync.WaitGroup{}
	for i := range datasetIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			ent, err := opengin.EntityByID(ctx, s.Graph, datasetIDs[i])
			if err != nil {
				errs[i] = err
				return
			}
			ents[i] = ent
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return domain.DatasetYears{}, s.fail(ctx, "catalog.dataset_years", err)
		}
	}

	out := domain.DatasetYears{
		Name:  temporal.TitleCase(temporal.StripYearSuffix(namecodec.Decode(ents[0].Name))),
		Years: make([]domain.DatasetYear, 0, len(ents)),
	}
	for _, e := range ents {
		year := temporal.Unknown
		if y := temporal.ExtractYear(e.Created); y != temporal.YearSentinel {
			year = strconv.Itoa(y)
		}
		out.Years = append(out.Years, domain.DatasetYear{DatasetID: e.ID, Year: year})
	}
	sort.Slice(out.Years, func(i, j int) bool { return out.Years[i].Year < out.Years[j].Year })
	return out, nil
}

// DatasetRoot walks upward from a dataset to its owning department or
// minister. Missing links come back as detail sentinels, not errors
func (s *Svc) DatasetRoot(ctx context.Context, datasetID string) (domain.RootResult, error) {
	hops, complete, err := s.walkUp(ctx, datasetID, false)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.RootResult{Detail: detailNoRelation}, nil
		}
		return domain.RootResult{}, s.fail(ctx, "catalog.dataset_root", err)
	}
	if !complete {
		return domain.RootResult{Detail: detailNoRoot}, nil
	}
	root := hops[len(hops)-1]
	return domain.RootResult{ID: root.ID, Name: root.Name, Type: root.KindMinor}, nil
}

// DatasetCategories collects every hop on the same upward walk, from the
// immediate parent category to the department or minister root
func (s *Svc) DatasetCategories(ctx context.Context, datasetID string) ([]domain.Hop, error) {
	hops, _, err := s.walkUp(ctx, datasetID, true)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return []domain.Hop{}, nil
		}
		return nil, s.fail(ctx, "catalog.dataset_categories", err)
	}
	return hops, nil
}

// walkUp follows the single incoming IS_ATTRIBUTE edge and then incoming
// AS_CATEGORY edges until a root kind entity or a dead end. complete is
// true when a root kind terminated the walk. A dataset with no incoming
// IS_ATTRIBUTE relation yields NotFound
func (s *Svc) walkUp(ctx context.Context, datasetID string, keepAll bool) (hops []domain.Hop, complete bool, err error) {
	rels, err := s.Graph.Relations(ctx, datasetID, opengin.RelationFilter{
		Name:      opengin.RelIsAttribute,
		Direction: opengin.DirectionIncoming,
	})
	if err != nil {
		return nil, false, err
	}
	if len(rels) == 0 {
		return nil, false, perr.NotFoundf("no relation found for dataset %s", datasetID)
	}

	next := rels[0].RelatedEntityID
	for hop := 0; next != ""; hop++ {
		if hop >= maxHops {
			return nil, false, perr.Internalf("category hierarchy too deep, possible cycle at %s", next)
		}
		ent, err := opengin.EntityByID(ctx, s.Graph, next)
		if err != nil {
			return nil, false, err
		}
		h := domain.Hop{
			ID:        ent.ID,
			Name:      namecodec.Decode(ent.Name),
			KindMajor: ent.Kind.Major,
			KindMinor: ent.Kind.Minor,
		}
		if keepAll || ent.IsRootKind() {
			hops = append(hops, h)
		} else {
			hops = []domain.Hop{h}
		}
		if ent.IsRootKind() {
			return hops, true, nil
		}

		parents, err := s.Graph.Relations(ctx, ent.ID, opengin.RelationFilter{
			Name:      opengin.RelAsCategory,
			Direction: opengin.DirectionIncoming,
		})
		if err != nil {
			return nil, false, err
		}
		if len(parents) == 0 {
			return hops, false, nil
		}
		next = parents[0].RelatedEntityID
	}
	return hops, false, nil
}

// DatasetMetadata returns the dataset's metadata map with values decoded
func (s *Svc) DatasetMetadata(ctx context.Context, datasetID string) (map[string]string, error) {
	raw, err := s.Graph.Metadata(ctx, datasetID)
	if err != nil {
		return nil, s.fail(ctx, "catalog.dataset_metadata", err)
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = namecodec.Decode(v)
	}
	return out, nil
}
