package module

import (
	"context"

	"govgraph/internal/services/api/orgchart/domain"
	orgsvc "govgraph/internal/services/api/orgchart/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptOrgChartPort struct{ svc orgsvc.Service }

// ActivePortfolios lists a president's portfolios at a date
func (a adaptOrgChartPort) ActivePortfolios(ctx context.Context, presidentID, date string) (domain.PortfolioList, error) {
	return a.svc.ActivePortfolios(ctx, presidentID, date)
}

// Departments lists the departments under a portfolio at a date
func (a adaptOrgChartPort) Departments(ctx context.Context, portfolioID, date string) (domain.DepartmentList, error) {
	return a.svc.Departments(ctx, portfolioID, date)
}

// PrimeMinister resolves the head of government at a date
func (a adaptOrgChartPort) PrimeMinister(ctx context.Context, date string) (domain.PrimeMinister, error) {
	return a.svc.PrimeMinister(ctx, date)
}
