// Package service contains people workflows
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
	"govgraph/internal/services/api/people/domain"
)

// fanout caps concurrent upstream calls per aggregation phase
const fanout = 16

// Service defines the people service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the people service
type Svc struct {
	Graph opengin.Port
}

// New constructs a people service
func New(graph opengin.Port) *Svc {
	if graph == nil {
		panic("people.Service requires a non nil graph port")
	}
	return &Svc{Graph: graph}
}

// sortableItem carries the term bounds until sorting is done; the bounds
// are stripped from the returned items
type sortableItem struct {
	item  domain.HistoryItem
	start string
	end   string
}

// PersonHistory reconstructs a person's ministry record from incoming
// appointment edges, with presidency overlap per term. Either relation
// branch failing degrades to an empty list; individual term enrichment
// failures are dropped
func (s *Svc) PersonHistory(ctx context.Context, personID string) (domain.History, error) {
	if personID == "" {
		return domain.History{}, perr.InvalidArgf("person id is required")
	}

	var (
		ministries   []opengin.Relation
		presidencies []opengin.Relation
	)
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		rels, err := s.Graph.Relations(ctx, personID, opengin.RelationFilter{
			Name:      opengin.RelAsAppointed,
			Direction: opengin.DirectionIncoming,
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("person_id", personID).Msg("ministry branch degraded to empty")
			return
		}
		ministries = rels
	}()
	go func() {
		defer wg.Done()
		rels, err := s.Graph.Relations(ctx, personID, opengin.RelationFilter{
			Name:      opengin.RelAsPresident,
			Direction: opengin.DirectionIncoming,
		})
		if err != nil {
			logger.C(ctx).Warn().Err(err).Str("person_id", personID).Msg("presidency branch degraded to empty")
			return
		}
		presidencies = rels
	}()
	wg.Wait()

	// a term starting and ending on the same calendar date is a non event
	kept := make([]opengin.Relation, 0, len(ministries))
	for _, r := range ministries {
		if r.StartTime != "" && r.EndTime != "" && temporal.SameDate(r.StartTime, r.EndTime) {
			continue
		}
		kept = append(kept, r)
	}

	slots := make([]*sortableItem, len(kept))
	sem := make(chan struct{}, fanout)
	iwg := sync.WaitGroup{}
	for i := range kept {
		iwg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; iwg.Done() }()
			rel := kept[i]
			ent, err := opengin.EntityByID(ctx, s.Graph, rel.RelatedEntityID)
			if err != nil {
				logger.C(ctx).Warn().Err(err).
					Str("ministry_id", rel.RelatedEntityID).
					Msg("history item dropped")
				return
			}
			slots[i] = &sortableItem{
				item: domain.HistoryItem{
					ID:          ent.ID,
					Name:        namecodec.Decode(ent.Name),
					Term:        temporal.Term(rel.StartTime, rel.EndTime),
					IsPresident: presidentDuring(presidencies, rel.StartTime, rel.EndTime),
				},
				start: temporal.DatePart(rel.StartTime),
				end:   temporal.DatePart(rel.EndTime),
			}
		}(i)
	}
	iwg.Wait()

	items := make([]sortableItem, 0, len(kept))
	for _, it := range slots {
		if it != nil {
			items = append(items, *it)
		}
	}

	// ongoing first, then latest ended; ties broken by latest started
	sort.Slice(items, func(i, j int) bool {
		ei, ej := effectiveEnd(items[i].end), effectiveEnd(items[j].end)
		if ei != ej {
			return ei > ej
		}
		return items[i].start > items[j].start
	})

	out := domain.History{
		MinistryHistory:    make([]domain.HistoryItem, 0, len(items)),
		MinistriesWorkedAt: len(items),
		WorkedAsPresident:  len(presidencies),
	}
	for _, it := range items {
		out.MinistryHistory = append(out.MinistryHistory, it.item)
	}
	return out, nil
}

// effectiveEnd maps an ongoing term onto a maximal date so it sorts
// ahead of every bounded term in descending order
func effectiveEnd(end string) string {
	if end == "" {
		return temporal.EndOfTime
	}
	return end
}

// presidentDuring reports whether any presidency term overlaps the
// given ministry interval
func presidentDuring(presidencies []opengin.Relation, start, end string) bool {
	for _, p := range presidencies {
		if temporal.Overlaps(p.StartTime, p.EndTime, start, end) {
			return true
		}
	}
	return false
}
