package platform

import "context"

// Repository persists the platform singleton. Save must fail with a version
// conflict when a concurrent writer got there first.
type Repository interface {
	// Create persists a freshly initialized platform. Fails if one exists.
	Create(ctx context.Context, p *Platform) error
	// Get returns the platform state, or ErrNotFound before initialization.
	Get(ctx context.Context) (*Platform, error)
	// Update persists changes using optimistic locking on the version field.
	Update(ctx context.Context, p *Platform) error
}
