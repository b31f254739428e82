package domain

import "context"

// ServicePort defines the service contract for history
type ServicePort interface {
	Record(ctx context.Context, e Entry) error
	Get(ctx context.Context, id string) (Entry, error)
	Recent(ctx context.Context, in RecentInput) ([]Entry, error)
}
