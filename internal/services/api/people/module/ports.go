package module

import (
	"context"

	"govgraph/internal/services/api/people/domain"
	peoplesvc "govgraph/internal/services/api/people/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPeoplePort struct{ svc peoplesvc.Service }

// PersonHistory reconstructs a person's ministry record
func (a adaptPeoplePort) PersonHistory(ctx context.Context, personID string) (domain.History, error) {
	return a.svc.PersonHistory(ctx, personID)
}
