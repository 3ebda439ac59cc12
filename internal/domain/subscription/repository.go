package subscription

import "context"

// Repository persists subscriptions. Updates use optimistic locking on the
// version field so two concurrent executions of the same subscription cannot
// both commit.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	FindByAddress(ctx context.Context, address string) (*Subscription, error)
	FindByPayer(ctx context.Context, payer string, offset, limit int) ([]*Subscription, int64, error)
	FindByMerchant(ctx context.Context, merchant string, offset, limit int) ([]*Subscription, int64, error)
	// FindDue returns active, unpaused subscriptions whose next payment is at
	// or before the given Unix timestamp.
	FindDue(ctx context.Context, nowUnix int64, limit int) ([]*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	// Delete removes a closed subscription row.
	Delete(ctx context.Context, address string) error
}
