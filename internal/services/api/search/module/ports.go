package module

import (
	"context"

	"govgraph/internal/services/api/search/domain"
	searchsvc "govgraph/internal/services/api/search/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptSearchPort struct{ svc searchsvc.Service }

// UnifiedSearch runs a scored multi type entity search
func (a adaptSearchPort) UnifiedSearch(ctx context.Context, in domain.Input) (domain.Output, error) {
	return a.svc.UnifiedSearch(ctx, in)
}
