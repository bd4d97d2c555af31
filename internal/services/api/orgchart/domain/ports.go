package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	ActivePortfolios(ctx context.Context, presidentID, date string) (PortfolioList, error)
	Departments(ctx context.Context, portfolioID, date string) (DepartmentList, error)
	PrimeMinister(ctx context.Context, date string) (PrimeMinister, error)
}
