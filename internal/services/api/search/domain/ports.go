package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	UnifiedSearch(ctx context.Context, in Input) (Output, error)
}
