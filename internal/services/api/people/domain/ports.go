package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	PersonHistory(ctx context.Context, personID string) (History, error)
}
