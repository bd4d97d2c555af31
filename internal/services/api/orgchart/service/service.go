// Package service contains orgchart workflows
package service

import (
	"context"
	"sort"
	"sync"

	"govgraph/internal/adapters/opengin"
	"govgraph/internal/core/namecodec"
	"govgraph/internal/core/temporal"
	perr "govgraph/internal/platform/errors"
	"govgraph/internal/platform/logger"
	"govgraph/internal/services/api/orgchart/domain"
)

// fanout caps concurrent upstream calls per aggregation phase
const fanout = 16

// Service defines the orgchart service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the orgchart service
type Svc struct {
	Graph opengin.Port

	// govRootID anchors prime minister lookups
	govRootID string
}

// New constructs an orgchart service
func New(graph opengin.Port, govRootID string) *Svc {
	if graph == nil {
		panic("orgchart.Service requires a non nil graph port")
	}
	if govRootID == "" {
		panic("orgchart.Service requires a government root entity id")
	}
	return &Svc{Graph: graph, govRootID: govRootID}
}

func (s *Svc) fail(ctx context.Context, op string, err error) error {
	if perr.IsTerminal(err) || perr.IsRetryable(err) {
		return err
	}
	logger.C(ctx).Error().Err(err).Str("op", op).Msg("orgchart aggregation failed")
	return perr.Wrap(err, perr.ErrorCodeUnknown, "orgchart aggregation failed")
}

// ActivePortfolios lists the portfolios a president holds at the given
// date, each enriched with its appointed ministers. Portfolios whose
// enrichment fails are dropped and counted out; the call fails only when
// every portfolio fails
func (s *Svc) ActivePortfolios(ctx context.Context, presidentID, date string) (domain.PortfolioList, error) {
	if presidentID == "" {
		return domain.PortfolioList{}, perr.InvalidArgf("president id is required")
	}
	if date == "" {
		return domain.PortfolioList{}, perr.InvalidArgf("date is required")
	}
	at := temporal.NormalizeTimestamp(date)

	rels, err := s.Graph.Relations(ctx, presidentID, opengin.RelationFilter{
		Name:      opengin.RelAsMinister,
		ActiveAt:  at,
		Direction: opengin.DirectionOutgoing,
	})
	if err != nil {
		return domain.PortfolioList{}, s.fail(ctx, "orgchart.portfolios", err)
	}
	if len(rels) == 0 {
		return domain.PortfolioList{PortfolioList: []domain.Portfolio{}}, nil
	}

	slots := make([]*domain.Portfolio, len(rels))
	errs := make([]error, len(rels))
	sem := make(chan struct{}, fanout)
	wg := sync.WaitGroup{}
	for i := range rels {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			p, err := s.portfolio(ctx, presidentID, rels[i], at)
			if err != nil {
				errs[i] = err
				return
			}
			slots[i] = &p
		}(i)
	}
	wg.Wait()

	out := domain.PortfolioList{PortfolioList: make([]domain.Portfolio, 0, len(rels))}
	failed := 0
	for i, p := range slots {
		if p == nil {
			failed++
			logger.C(ctx).Warn().Err(errs[i]).
				Str("portfolio_id", rels[i].RelatedEntityID).
				Msg("portfolio enrichment dropped")
			continue
		}
		out.PortfolioList = append(out.PortfolioList, *p)
		out.ActiveMinistries++
		if p.IsNew {
			out.NewMinistries++
		}
		underPresident := false
		for _, m := range p.Ministers {
			if m.IsNew {
				out.NewMinisters++
			}
			if m.ID == presidentID && m.IsPresident {
				underPresident = true
			}
		}
		if underPresident {
			out.MinistriesUnderPresident++
		}
	}
	if failed == len(rels) {
		return domain.PortfolioList{}, s.fail(ctx, "orgchart.portfolios",
			perr.Internalf("all %d portfolio enrichments failed", failed))
	}
	sort.Slice(out.PortfolioList, func(i, j int) bool {
		a, b := out.PortfolioList[i], out.PortfolioList[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, nil
}

// portfolio enriches a single AS_MINISTER edge into a portfolio view.
// With no appointed minister at the date the president holds the
// portfolio directly
func (s *Svc) portfolio(ctx context.Context, presidentID string, rel opengin.Relation, at string) (domain.Portfolio, error) {
	portfolioID := rel.RelatedEntityID

	var (
		ent       opengin.Entity
		appointed []opengin.Relation
		entErr    error
		appErr    error
	)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		ent, entErr = opengin.EntityByID(ctx, s.Graph, portfolioID)
	}()
	go func() {
		defer wg.Done()
		appointed, appErr = s.Graph.Relations(ctx, portfolioID, opengin.RelationFilter{
			Name:      opengin.RelAsAppointed,
			ActiveAt:  at,
			Direction: opengin.DirectionOutgoing,
		})
	}()
	wg.Wait()
	if entErr != nil {
		return domain.Portfolio{}, entErr
	}
	if appErr != nil {
		return domain.Portfolio{}, appErr
	}

	p := domain.Portfolio{
		ID:    ent.ID,
		Name:  namecodec.Decode(ent.Name),
		IsNew: temporal.SameDate(rel.StartTime, at),
	}

	if len(appointed) == 0 {
		pres, err := opengin.EntityByID(ctx, s.Graph, presidentID)
		if err != nil {
			return domain.Portfolio{}, err
		}
		p.Ministers = []domain.Minister{{
			ID:          pres.ID,
			Name:        namecodec.Decode(pres.Name),
			IsNew:       false,
			IsPresident: true,
			Term:        temporal.Term(rel.StartTime, rel.EndTime),
		}}
		return p, nil
	}

	ministers := make([]domain.Minister, len(appointed))
	errs := make([]error, len(appointed))
	mwg := sync.WaitGroup{}
	for i := range appointed {
		mwg.Add(1)
		go func(i int) {
			defer mwg.Done()
			m, err := s.minister(ctx, appointed[i], at)
			if err != nil {
				errs[i] = err
				return
			}
			ministers[i] = m
		}(i)
	}
	mwg.Wait()
	for _, err := range errs {
		if err != nil {
			return domain.Portfolio{}, err
		}
	}
	sort.Slice(ministers, func(i, j int) bool { return ministers[i].Name < ministers[j].Name })
	p.Ministers = ministers
	return p, nil
}

// minister enriches one AS_APPOINTED edge with person data and the
// presidency overlap check
func (s *Svc) minister(ctx context.Context, rel opengin.Relation, at string) (domain.Minister, error) {
	personID := rel.RelatedEntityID

	var (
		person  opengin.Entity
		pres    []opengin.Relation
		perErr  error
		presErr error
	)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		person, perErr = opengin.EntityByID(ctx, s.Graph, personID)
	}()
	go func() {
		defer wg.Done()
		pres, presErr = s.Graph.Relations(ctx, personID, opengin.RelationFilter{
			Name:      opengin.RelAsPresident,
			Direction: opengin.DirectionIncoming,
		})
	}()
	wg.Wait()
	if perErr != nil {
		return domain.Minister{}, perErr
	}
	if presErr != nil {
		return domain.Minister{}, presErr
	}

	return domain.Minister{
		ID:          person.ID,
		Name:        namecodec.Decode(person.Name),
		IsNew:       temporal.SameDate(rel.StartTime, at),
		IsPresident: presidentDuring(pres, rel.StartTime, rel.EndTime),
		Term:        temporal.Term(rel.StartTime, rel.EndTime),
	}, nil
}

// presidentDuring reports whether any presidency term overlaps the
// given appointment interval
func presidentDuring(presidencies []opengin.Relation, start, end string) bool {
	for _, p := range presidencies {
		if temporal.Overlaps(p.StartTime, p.EndTime, start, end) {
			return true
		}
	}
	return false
}

// Departments lists the departments under a portfolio at the given date.
// Failing branches are dropped silently from the listing
func (s *Svc) Departments(ctx context.Context, portfolioID, date string) (domain.DepartmentList, error) {
	if portfolioID == "" {
		return domain.DepartmentList{}, perr.InvalidArgf("portfolio id is required")
	}
	if date == "" {
		return domain.DepartmentList{}, perr.InvalidArgf("date is required")
	}
	at := temporal.NormalizeTimestamp(date)

	rels, err := s.Graph.Relations(ctx, portfolioID, opengin.RelationFilter{
		Name:      opengin.RelAsDepartment,
		ActiveAt:  at,
		Direction: opengin.DirectionOutgoing,
	})
	if err != nil {
		return domain.DepartmentList{}, s.fail(ctx, "orgchart.departments", err)
	}

	slots := make([]*domain.Department, len(rels))
	sem := make(chan struct{}, fanout)
	wg := sync.WaitGroup{}
	for i := range rels {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			d, err := s.department(ctx, rels[i], at)
			if err != nil {
				logger.C(ctx).Warn().Err(err).
					Str("department_id", rels[i].RelatedEntityID).
					Msg("department enrichment dropped")
				return
			}
			slots[i] = &d
		}(i)
	}
	wg.Wait()

	out := domain.DepartmentList{DepartmentList: make([]domain.Department, 0, len(rels))}
	for _, d := range slots {
		if d == nil {
			continue
		}
		out.DepartmentList = append(out.DepartmentList, *d)
		out.TotalDepartments++
		if d.IsNew {
			out.NewDepartments++
		}
	}
	sort.Slice(out.DepartmentList, func(i, j int) bool {
		a, b := out.DepartmentList[i], out.DepartmentList[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out, nil
}

// department enriches one AS_DEPARTMENT edge, probing for published
// catalog categories to set HasData
func (s *Svc) department(ctx context.Context, rel opengin.Relation, at string) (domain.Department, error) {
	deptID := rel.RelatedEntityID

	var (
		ent     opengin.Entity
		cats    []opengin.Relation
		entErr  error
		catsErr error
	)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		ent, entErr = opengin.EntityByID(ctx, s.Graph, deptID)
	}()
	go func() {
		defer wg.Done()
		cats, catsErr = s.Graph.Relations(ctx, deptID, opengin.RelationFilter{
			Name:      opengin.RelAsCategory,
			Direction: opengin.DirectionOutgoing,
		})
	}()
	wg.Wait()
	if entErr != nil {
		return domain.Department{}, entErr
	}
	if catsErr != nil {
		return domain.Department{}, catsErr
	}

	return domain.Department{
		ID:      ent.ID,
		Name:    namecodec.Decode(ent.Name),
		IsNew:   temporal.SameDate(rel.StartTime, at),
		HasData: len(cats) > 0,
	}, nil
}

// PrimeMinister resolves the head of government at the given date from
// the configured government root entity
func (s *Svc) PrimeMinister(ctx context.Context, date string) (domain.PrimeMinister, error) {
	if date == "" {
		return domain.PrimeMinister{}, perr.InvalidArgf("date is required")
	}
	at := temporal.NormalizeTimestamp(date)

	rels, err := s.Graph.Relations(ctx, s.govRootID, opengin.RelationFilter{
		Name:      opengin.RelAsPrimeMinister,
		ActiveAt:  at,
		Direction: opengin.DirectionOutgoing,
	})
	if err != nil {
		return domain.PrimeMinister{}, s.fail(ctx, "orgchart.prime_minister", err)
	}
	if len(rels) == 0 {
		return domain.PrimeMinister{}, perr.NotFoundf("no prime minister at %s", temporal.DatePart(at))
	}

	rel := rels[0]
	person, err := opengin.EntityByID(ctx, s.Graph, rel.RelatedEntityID)
	if err != nil {
		return domain.PrimeMinister{}, s.fail(ctx, "orgchart.prime_minister", err)
	}
	return domain.PrimeMinister{
		ID:    person.ID,
		Name:  namecodec.Decode(person.Name),
		IsNew: temporal.SameDate(rel.StartTime, at),
		Term:  temporal.Term(rel.StartTime, rel.EndTime),
	}, nil
}
